// Package composer decides what an order contains.
//
// A combo template is drawn first, naming the categories of the order.
// One sellable is then drawn for each category from its weight table,
// restricted to the sellables present in the reference snapshot. When
// enabled, each component slot of a sellable is filled with items and
// their surcharges are added to the price.
package composer
