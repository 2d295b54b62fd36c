// Package blockcat holds the compile-time catalog of block descriptors used
// by every element processor. A Block is an immutable (namespace, name,
// properties) triple; equality is by name and properties, matching the
// Anvil palette's own deduplication rule.
package blockcat

import "sort"

// Block is an immutable block descriptor. Zero value is minecraft:air.
type Block struct {
	namespace string
	name      string
	props     []prop // sorted by key for stable equality/printing
}

type prop struct {
	key, val string
}

// New returns a block with no properties.
func New(name string) Block {
	return Block{namespace: "minecraft", name: name}
}

// WithProps returns a copy of b with the given properties merged in,
// overwriting any existing key.
func (b Block) WithProps(kv map[string]string) Block {
	merged := make(map[string]string, len(b.props)+len(kv))
	for _, p := range b.props {
		merged[p.key] = p.val
	}
	for k, v := range kv {
		merged[k] = v
	}
	out := Block{namespace: b.namespace, name: b.name}
	out.props = make([]prop, 0, len(merged))
	for k, v := range merged {
		out.props = append(out.props, prop{key: k, val: v})
	}
	sort.Slice(out.props, func(i, j int) bool { return out.props[i].key < out.props[j].key })
	return out
}

// Name returns the namespaced block id, e.g. "minecraft:oak_stairs".
func (b Block) Name() string {
	if b.namespace == "" {
		return "minecraft:air"
	}
	return b.namespace + ":" + b.name
}

// Properties returns the properties as a map, or nil when there are none.
// Use PropertyPairs for a stable key order.
func (b Block) Properties() map[string]string {
	if len(b.props) == 0 {
		return nil
	}
	m := make(map[string]string, len(b.props))
	for _, p := range b.props {
		m[p.key] = p.val
	}
	return m
}

// PropertyPairs returns properties as sorted (key, value) pairs, used by the
// Anvil writer to build a deterministic palette key.
func (b Block) PropertyPairs() [][2]string {
	if len(b.props) == 0 {
		return nil
	}
	out := make([][2]string, len(b.props))
	for i, p := range b.props {
		out[i] = [2]string{p.key, p.val}
	}
	return out
}

// Equal reports whether two blocks have the same name and properties.
func (b Block) Equal(o Block) bool {
	if b.Name() != o.Name() || len(b.props) != len(o.props) {
		return false
	}
	for i := range b.props {
		if b.props[i] != o.props[i] {
			return false
		}
	}
	return true
}

// IsAir reports whether b is the sentinel empty value.
func (b Block) IsAir() bool { return b.Name() == "minecraft:air" }

// PaletteKey returns a value suitable for use as a map key uniquely
// identifying this block's (name, properties) pair.
func (b Block) PaletteKey() string {
	s := b.Name()
	for _, p := range b.props {
		s += ";" + p.key + "=" + p.val
	}
	return s
}

// Direction is a placement-facing cardinal direction.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// SlabType is the vertical placement of a slab.
type SlabType string

const (
	SlabTop    SlabType = "top"
	SlabBottom SlabType = "bottom"
	SlabDouble SlabType = "double"
)

// The catalog of commonly placed blocks. Processors also build some blocks
// directly with New (e.g. "gray_concrete", "lantern"), which have no entry
// here.
var (
	Air         = Block{}
	Sponge      = New("sponge")
	Dirt        = New("dirt")
	CoarseDirt  = New("coarse_dirt")
	GrassBlock  = New("grass_block")
	Stone       = New("stone")
	Bedrock     = New("bedrock")
	Sand        = New("sand")
	Gravel      = New("gravel")
	Snow        = New("snow")
	SnowBlock   = New("snow_block")
	Glass       = New("glass")
	GlassPane   = New("glass_pane")
	Glowstone   = New("glowstone")
	Water       = New("water")
	PackedIce   = New("packed_ice")
	Ice         = New("ice")
	SmoothStone = New("smooth_stone")
	Cobblestone = New("cobblestone")
	StoneBricks = New("stone_bricks")
	Andesite    = New("andesite")
	PolishedAndesite = New("polished_andesite")
	Farmland    = New("farmland")
	HayBlock    = New("hay_block")
	Pumpkin     = New("pumpkin")
	Melon       = New("melon")
	IronBars    = New("iron_bars")
	RedstoneLamp = New("redstone_lamp")
	Rail        = New("rail")
	TallGrass   = New("tall_grass")
	Poppy       = New("poppy")
	Dandelion   = New("dandelion")
	WheatCrop   = New("wheat")
)

// Wools maps a color name to its wool block, e.g. Wools["red"].
var Wools = buildColored("_wool")

// Carpets maps a color name to its carpet block.
var Carpets = buildColored("_carpet")

var colors = []string{
	"white", "orange", "magenta", "light_blue", "yellow", "lime", "pink",
	"gray", "light_gray", "cyan", "purple", "blue", "brown", "green", "red", "black",
}

func buildColored(suffix string) map[string]Block {
	m := make(map[string]Block, len(colors))
	for _, c := range colors {
		m[c] = New(c + suffix)
	}
	return m
}

// WoodTypes lists every wood species with a planks/log/leaves/door/stairs/slab/fence set.
var WoodTypes = []string{"oak", "birch", "spruce", "jungle", "acacia", "dark_oak"}

// Planks, Logs, Leaves, Doors, Fences map wood type -> block.
var (
	Planks = buildWood("_planks")
	Logs   = buildWood("_log")
	Leaves = buildWood("_leaves")
	Doors  = buildWood("_door")
	Fences = buildWood("_fence")
)

func buildWood(suffix string) map[string]Block {
	m := make(map[string]Block, len(WoodTypes))
	for _, w := range WoodTypes {
		m[w] = New(w + suffix)
	}
	return m
}

// Stairs returns a stairs block of the given wood/material with facing and half.
func Stairs(material string, facing Direction, top bool) Block {
	half := "bottom"
	if top {
		half = "top"
	}
	return New(material + "_stairs").WithProps(map[string]string{
		"facing": string(facing),
		"half":   half,
	})
}

// Slab returns a slab block of the given material with the given type.
func Slab(material string, t SlabType) Block {
	return New(material + "_slab").WithProps(map[string]string{"type": string(t)})
}

// Wall returns a wall block of the given material.
func Wall(material string) Block {
	return New(material + "_wall")
}

// SignStanding returns a standing sign block with the given 0..15 rotation.
func SignStanding(woodType string, rotation int) Block {
	return New(woodType + "_sign").WithProps(map[string]string{"rotation": itoa(rotation)})
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
