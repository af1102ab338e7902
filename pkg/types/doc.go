// Package types provides shared type definitions for the order seeder.
//
// This package defines the menu, staff and order value types used across
// the sampler, composer, synthesizer, seeder and storage packages.
//
// # Menu Types
//
// A Category groups Sellables. A Sellable is made of Components, and each
// Component is filled by Items that carry the component's Feature:
//
//	plate := types.Sellable{
//	    Name:     "Plate",
//	    Category: "Meal",
//	    Price:    9.80,
//	    Components: []types.Component{
//	        {Feature: "side", Quantity: 1},
//	        {Feature: "entree", Quantity: 2},
//	    },
//	}
//
// # Order Types
//
// OrderSpec is the in-memory description of one synthesized order. Its
// TotalPrice is the sum of its SoldSellable prices:
//
//	spec := types.OrderSpec{
//	    CustomerName: "Grace",
//	    EmployeeID:   3,
//	    OrderedAt:    at,
//	    Sellables:    sold,
//	    TotalPrice:   types.SumPrices(sold),
//	}
//
// Orders generated for today carry a RecentOrderMarker with their initial
// status; historical orders leave Recent nil.
//
// # Reference Snapshot
//
// Reference indexes the reference collections fetched at the start of a
// run. It is never mutated after NewReference returns, so every draw of
// a run can share it without locking.
package types
