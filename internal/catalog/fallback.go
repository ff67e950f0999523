package catalog

import (
	"encoding/base64"
	"fmt"
	"hash/fnv"
)

// fallbackNames is the reference table used whenever the upstream
// marketplace is unreachable or not configured.
var fallbackNames = []string{
	"Artisan Brick", "Astral Shard", "B-Day Candle", "Berry Box", "Big Year",
	"Bonded Ring", "Bow Tie", "Bunny Milffin", "Candy Cane", "Clover Pin",
	"Cookie Heart", "Crystal Ball", "Cupid Charm", "Desk Calendar", "Diamond Ring",
	"Durov's Cap", "Easter Egg", "Electric Skull", "Eternal Candle", "Eternal Rose",
	"Evil Eye", "Flying Broom", "Fresh Socks", "Gem Signet", "Genie Lamp",
	"Ginger Cookie", "Hanging Star", "Heart Locket", "Heroic Helmet", "Hex Pot",
	"Holiday Drink", "Homemade Cake", "Hypno Lollipop", "Input Key", "Ion Gem",
	"Ionic Dryer", "Jack-in-the-Box", "Jelly Bunny", "Jester Hat", "Jingle Bells",
	"Jolly Chimp", "Joyful Bundle", "Kissed Frog", "Light Sword", "Lol Pop",
	"Loot Bag", "Love Candle", "Love Potion", "Low Rider", "Lunar Snake",
	"Lush Bouquet", "Mad Pumpkin", "Magic Potion", "Mighty Arm", "Mini Oscar",
	"Moon Pandante", "Nail Bracelet", "Neko Helmet", "Party Sparkler", "Perfume Bottle",
	"Pet Snake", "Plush Pepe", "Precious Peach", "Record Player", "Restless Jar",
	"Sakura Flower", "Santa Hat", "Scared Cat", "Sharp Tongue", "Signet Ring",
	"Skull Flower", "Sky Stilettos", "Sleigh Bell", "Snake Box", "Snoop Cigar",
	"Snoop Dogg", "Snow Globe", "Snow Mittens", "Spiced Wine", "Spy Agaric",
	"Star Notepad", "Stellar Rocket", "Swag Bag", "Swiss Watch", "Tama Gadget",
	"Top Hat", "Toy Bear", "Trapped Heart", "Valentine Box", "Vintage Cigar",
	"Voodoo Doll", "Westside Sign", "Whip Cupcake", "Winter Weath", "Witch Hat",
	"Xmas Strocking",
}

// knownPrices holds realistic market prices for the gifts whose value is
// well established; everything else gets a synthetic price.
var knownPrices = map[string]float64{
	"Bunny Milffin": 5000, "Plush Pepe": 4500, "Snoop Dogg": 4000, "Durov's Cap": 3500,
	"Diamond Ring": 150, "Eternal Rose": 120, "Crystal Ball": 100, "Genie Lamp": 90,
	"Astral Shard": 70, "Heroic Helmet": 60, "Magic Potion": 50, "Electric Skull": 45,
	"Artisan Brick": 25, "Candy Cane": 20, "Bow Tie": 18, "Fresh Socks": 15,
}

var placeholderColors = []string{"#667eea", "#764ba2", "#f093fb", "#f5576c", "#4facfe"}

// nameHash is the stable 64-bit FNV-1a hash every synthetic value in the
// fallback path derives from, so repeated runs produce the same catalog.
func nameHash(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}

// fallbackPrice returns the known price for a gift, or a deterministic
// synthetic price in [20, 100) derived from the name hash.
func fallbackPrice(name string) float64 {
	if p, ok := knownPrices[name]; ok {
		return p
	}
	return float64(nameHash(name)%80 + 20)
}

// fallbackSalesCount is a deterministic synthetic sales count in [1, 50].
func fallbackSalesCount(name string) int {
	return int(nameHash(name)%50 + 1)
}

func fallbackID(name string) string {
	return fmt.Sprintf("gift_%x", nameHash(name))
}

// PlaceholderImage generates an inline SVG data URI for gifts without a
// remote image, colored deterministically by name.
func PlaceholderImage(name string) string {
	color := placeholderColors[nameHash(name)%uint64(len(placeholderColors))]
	svg := fmt.Sprintf(`<svg width="120" height="120" viewBox="0 0 120 120" fill="none" xmlns="http://www.w3.org/2000/svg">`+
		`<rect width="120" height="120" rx="15" fill="rgba(102,126,234,0.2)"/>`+
		`<rect x="30" y="30" width="60" height="60" rx="10" fill="%s"/>`+
		`<text x="60" y="70" text-anchor="middle" fill="white" font-size="14" font-family="Arial">🎁</text>`+
		`</svg>`, color)
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

// FallbackRecords builds the raw record set for the reference table.
// Deterministic: same names, same prices, same sales counts on every call.
func FallbackRecords() []RawGift {
	records := make([]RawGift, 0, len(fallbackNames))
	for _, name := range fallbackNames {
		records = append(records, RawGift{
			ID:             fallbackID(name),
			Name:           name,
			BasePrice:      fallbackPrice(name),
			IsTransferable: true,
			SalesCount:     fallbackSalesCount(name),
		})
	}
	return records
}
