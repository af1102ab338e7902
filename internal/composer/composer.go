package composer

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/orderseed/internal/sampler"
	"github.com/dshills/orderseed/pkg/types"
)

const defaultCacheSize = 128

// Options toggles the optional composition refinements
type Options struct {
	ResolveItems    bool // Fill each component with concrete items
	ApplySurcharges bool // Add item surcharges to the sellable price (needs ResolveItems)
	CacheSize       int  // Distribution cache entries (default: 128)
}

// DefaultOptions resolves items and charges their surcharges
func DefaultOptions() Options {
	return Options{ResolveItems: true, ApplySurcharges: true, CacheSize: defaultCacheSize}
}

// Pick is one chosen category together with the sellable drawn for it
type Pick struct {
	Category string
	Sellable types.Sellable
}

// Composer draws order compositions from weight tables and a reference
// snapshot. It is not safe for concurrent use.
type Composer struct {
	tables  Tables
	combos  []sampler.Option[ComboTemplate]
	options Options
	rng     sampler.Source

	// Distributions restricted to a snapshot, built on first use
	sellableDists *lru.Cache[distKey, distribution[types.Sellable]]
	itemDists     *lru.Cache[distKey, distribution[types.Item]]
}

type distKey struct {
	ref  *types.Reference
	name string
}

// distribution is either weighted (tables matched the snapshot) or a
// uniform pool (no table configured for the name)
type distribution[T any] struct {
	weighted []sampler.Option[T]
	uniform  []T
}

func (d distribution[T]) draw(rng sampler.Source) (T, error) {
	if len(d.weighted) > 0 {
		return sampler.Choose(rng, d.weighted)
	}
	return sampler.Select(rng, d.uniform)
}

// New creates a composer. A nil rng uses the process-wide source.
func New(tables Tables, options Options, rng sampler.Source) (*Composer, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = sampler.Default()
	}
	size := options.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	sellableDists, err := lru.New[distKey, distribution[types.Sellable]](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create distribution cache: %w", err)
	}
	itemDists, err := lru.New[distKey, distribution[types.Item]](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create distribution cache: %w", err)
	}

	combos := make([]sampler.Option[ComboTemplate], len(tables.Combos))
	for i, c := range tables.Combos {
		combos[i] = sampler.P(c.Probability, c)
	}

	return &Composer{
		tables:        tables,
		combos:        combos,
		options:       options,
		rng:           rng,
		sellableDists: sellableDists,
		itemDists:     itemDists,
	}, nil
}

// ChooseCombo draws which categories the next order contains
func (c *Composer) ChooseCombo() (ComboTemplate, error) {
	return sampler.Choose(c.rng, c.combos)
}

// Compose draws a combo template, then one sellable for each of its
// categories. Sellables are only ever drawn from ref, so names in the
// weight tables that are missing from the menu can never be returned.
func (c *Composer) Compose(ref *types.Reference) ([]Pick, error) {
	combo, err := c.ChooseCombo()
	if err != nil {
		return nil, fmt.Errorf("failed to choose combo: %w", err)
	}

	picks := make([]Pick, 0, len(combo.Categories))
	for _, category := range combo.Categories {
		dist, err := c.sellableDistribution(ref, category)
		if err != nil {
			return nil, err
		}
		s, err := dist.draw(c.rng)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", category, err)
		}
		picks = append(picks, Pick{Category: category, Sellable: s})
	}
	return picks, nil
}

// sellableDistribution restricts the category's weight table to the
// sellables present in ref. Weights are kept as configured.
func (c *Composer) sellableDistribution(ref *types.Reference, category string) (distribution[types.Sellable], error) {
	key := distKey{ref: ref, name: category}
	if d, ok := c.sellableDists.Get(key); ok {
		return d, nil
	}

	candidates := ref.SellablesIn(category)
	if len(candidates) == 0 {
		return distribution[types.Sellable]{}, fmt.Errorf("category %s has no sellables: %w", category, sampler.ErrEmptyDistribution)
	}

	d := distribution[types.Sellable]{
		weighted: restrict(c.tables.Sellables[category], candidates, func(s types.Sellable) string { return s.Name }),
		uniform:  candidates,
	}
	c.sellableDists.Add(key, d)
	return d, nil
}

// Sell turns a pick into a sold sellable, resolving items and surcharges
// when enabled
func (c *Composer) Sell(ref *types.Reference, pick Pick) (types.SoldSellable, error) {
	sold := types.SoldSellable{
		SellableID: pick.Sellable.ID,
		Name:       pick.Sellable.Name,
		Category:   pick.Category,
		Price:      pick.Sellable.Price,
	}
	if !c.options.ResolveItems {
		return sold, nil
	}

	items, err := c.ResolveItems(ref, pick.Sellable)
	if err != nil {
		return types.SoldSellable{}, err
	}
	sold.Items = items

	if c.options.ApplySurcharges {
		price := sold.Price
		for _, it := range items {
			price += it.AdditionalPrice * float64(it.Quantity)
		}
		sold.Price = types.RoundCents(price)
	}
	return sold, nil
}

// ResolveItems fills every component of sellable with items from ref.
// Each unit of a component is drawn separately; repeated picks of the same
// item are merged into one line with a larger quantity.
func (c *Composer) ResolveItems(ref *types.Reference, sellable types.Sellable) ([]types.SoldItem, error) {
	var lines []types.SoldItem
	index := make(map[int64]int)

	for _, comp := range sellable.Components {
		dist, err := c.itemDistribution(ref, comp.Feature)
		if err != nil {
			return nil, fmt.Errorf("sellable %s: %w", sellable.Name, err)
		}
		for unit := 0; unit < comp.Quantity; unit++ {
			it, err := dist.draw(c.rng)
			if err != nil {
				return nil, fmt.Errorf("feature %s: %w", comp.Feature, err)
			}
			if i, ok := index[it.ID]; ok {
				lines[i].Quantity++
				continue
			}
			index[it.ID] = len(lines)
			lines = append(lines, types.SoldItem{
				ItemID:          it.ID,
				Name:            it.Name,
				Quantity:        1,
				AdditionalPrice: it.AdditionalPrice,
			})
		}
	}
	return lines, nil
}

func (c *Composer) itemDistribution(ref *types.Reference, feature string) (distribution[types.Item], error) {
	key := distKey{ref: ref, name: feature}
	if d, ok := c.itemDists.Get(key); ok {
		return d, nil
	}

	candidates := ref.ItemsWithFeature(feature)
	if len(candidates) == 0 {
		return distribution[types.Item]{}, fmt.Errorf("feature %s has no items: %w", feature, sampler.ErrEmptyDistribution)
	}

	d := distribution[types.Item]{
		weighted: restrict(c.tables.Items[feature], candidates, func(it types.Item) string { return it.Name }),
		uniform:  candidates,
	}
	c.itemDists.Add(key, d)
	return d, nil
}

// restrict keeps the weights whose name is among candidates, in table order.
// It returns nil when nothing matches so callers fall back to a uniform draw.
func restrict[T any](weights []Weight, candidates []T, name func(T) string) []sampler.Option[T] {
	if len(weights) == 0 {
		return nil
	}
	byName := make(map[string]T, len(candidates))
	for _, cand := range candidates {
		byName[name(cand)] = cand
	}

	var options []sampler.Option[T]
	for _, w := range weights {
		if v, ok := byName[w.Name]; ok {
			options = append(options, sampler.Option[T]{Probability: w.Probability, Value: v})
		}
	}
	return options
}
