// Package calendar models the store's weekly business hours and draws
// order timestamps that fall inside them.
package calendar
