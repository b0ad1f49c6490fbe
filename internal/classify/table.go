// Package classify holds the keyword tables used to infer classification data
// that a script leaves out: item categories and types, effects, spell elements,
// monster affinities, map tilesets, battle flags and NPC roles.
//
// Tables are plain data. DefaultTable returns the built-in set; LoadTable
// overlays a YAML file on top of it so keyword sets can be extended per locale.
package classify

// Rule maps any of its keywords to a value. Rules are matched in slice order, so
// more specific rules must come first (e.g. "短剣" before "剣").
type Rule struct {
	Value    string   `yaml:"value"`
	Keywords []string `yaml:"keywords"`
}

// EffectRule describes the effect an action identifier produces.
type EffectRule struct {
	Target string   `yaml:"target"`
	Type   string   `yaml:"type"`
	Status []string `yaml:"status,omitempty"`
}

// AffinityRule assigns elemental weaknesses and resistances to monsters whose
// name contains one of the keywords.
type AffinityRule struct {
	Keywords    []string `yaml:"keywords"`
	Weaknesses  []string `yaml:"weaknesses"`
	Resistances []string `yaml:"resistances"`
}

// Table is the complete set of inference data.
type Table struct {
	// Categories holds per item type (by ItemType name) the priority-ordered subtype rules.
	Categories map[string][]Rule `yaml:"categories"`
	// CategoryDefaults is the subtype used when no rule matches.
	CategoryDefaults map[string]string `yaml:"category_defaults"`
	// ItemTypes infers an item type from its name when neither the container
	// nor an explicit field says.
	ItemTypes []Rule `yaml:"item_types"`
	// Effects maps normalised action identifiers to effects.
	Effects map[string]EffectRule `yaml:"effects"`
	// StatAliases maps script stat keys to canonical stat names.
	StatAliases map[string]string `yaml:"stat_aliases"`

	SpellElements     []Rule         `yaml:"spell_elements"`
	SpellAreaKeywords []string       `yaml:"spell_area_keywords"`
	SpellAllyKeywords []string       `yaml:"spell_ally_keywords"`
	MonsterAffinities []AffinityRule `yaml:"monster_affinities"`
	MapTilesets       []Rule         `yaml:"map_tilesets"`
	TilesetEncounters map[string]int `yaml:"tileset_encounters"`
	BattleBackgrounds []Rule         `yaml:"battle_backgrounds"`
	BossKeywords      []string       `yaml:"boss_keywords"`
	NPCRoles          []Rule         `yaml:"npc_roles"`
	QuestKeywords     []string       `yaml:"quest_keywords"`
}

// Fallback values used when a table lookup finds nothing.
const (
	DefaultElement    = "None"
	DefaultTileset    = "field"
	DefaultBackground = "field"
	DefaultRole       = "Villager"
	DefaultEncounter  = 10
)

// DefaultTable returns a fresh copy of the built-in tables.
func DefaultTable() *Table {
	return &Table{
		Categories: map[string][]Rule{
			"Weapon": {
				{Value: "Dagger", Keywords: []string{"dagger", "knife", "dirk", "stiletto", "短剣", "ナイフ", "匕首"}},
				{Value: "Axe", Keywords: []string{"axe", "hatchet", "斧"}},
				{Value: "Staff", Keywords: []string{"staff", "rod", "wand", "scepter", "杖", "ロッド"}},
				{Value: "Hammer", Keywords: []string{"hammer", "mace", "club", "槌", "ハンマー"}},
				{Value: "Spear", Keywords: []string{"spear", "lance", "trident", "halberd", "槍"}},
				{Value: "Bow", Keywords: []string{"bow", "arrow", "弓"}},
				{Value: "Fist", Keywords: []string{"nunchaku", "claw", "knuckle", "fist", "拳", "爪"}},
				{Value: "Sword", Keywords: []string{"sword", "blade", "saber", "sabre", "katana", "剣", "刀"}},
			},
			"Armor": {
				{Value: "Heavy", Keywords: []string{"plate", "dragon", "knight", "crystal mail", "鎧"}},
				{Value: "Light", Keywords: []string{"robe", "cloth", "vest", "tunic", "服", "ローブ"}},
				{Value: "Medium", Keywords: []string{"mail", "chain", "leather", "armor"}},
			},
			"Helmet": {
				{Value: "Hat", Keywords: []string{"hat", "cap", "hood", "bandana", "帽"}},
				{Value: "Crown", Keywords: []string{"crown", "tiara", "circlet", "冠"}},
			},
			"Shield": {
				{Value: "Buckler", Keywords: []string{"buckler", "小盾"}},
				{Value: "Tower", Keywords: []string{"tower", "aegis", "great", "大盾"}},
			},
			"Accessory": {
				{Value: "Ring", Keywords: []string{"ring", "指輪"}},
				{Value: "Amulet", Keywords: []string{"amulet", "necklace", "pendant", "charm", "首飾"}},
				{Value: "Gloves", Keywords: []string{"glove", "gauntlet", "bracer", "小手"}},
				{Value: "Boots", Keywords: []string{"boot", "shoe", "靴"}},
			},
			"Consumable": {
				{Value: "Ether", Keywords: []string{"ether", "魔力"}},
				{Value: "Elixir", Keywords: []string{"elixir", "エリクサー"}},
				{Value: "Cure", Keywords: []string{"antidote", "remedy", "eye drop", "soft", "needle", "毒消"}},
				{Value: "Revive", Keywords: []string{"phoenix", "revive", "life", "蘇生"}},
				{Value: "Rest", Keywords: []string{"tent", "cabin", "cottage", "sleeping bag", "テント"}},
				{Value: "Potion", Keywords: []string{"potion", "tonic", "ポーション", "薬"}},
			},
			"KeyItem": {
				{Value: "Crystal", Keywords: []string{"crystal", "orb", "クリスタル"}},
				{Value: "Document", Keywords: []string{"letter", "scroll", "tablet", "手紙"}},
			},
		},
		CategoryDefaults: map[string]string{
			"Weapon":     "Sword",
			"Armor":      "Medium",
			"Helmet":     "Helm",
			"Shield":     "Shield",
			"Accessory":  "Trinket",
			"Consumable": "Potion",
			"KeyItem":    "Key",
			"Misc":       "Misc",
		},
		ItemTypes: []Rule{
			{Value: "KeyItem", Keywords: []string{"key", "crystal", "orb", "letter", "鍵"}},
			{Value: "Shield", Keywords: []string{"shield", "buckler", "aegis", "盾"}},
			{Value: "Helmet", Keywords: []string{"helm", "cap", "hat", "hood", "crown", "tiara", "兜", "帽"}},
			{Value: "Accessory", Keywords: []string{"ring", "amulet", "necklace", "pendant", "glove", "gauntlet", "bracer", "boot", "指輪"}},
			{Value: "Armor", Keywords: []string{"armor", "armour", "mail", "robe", "plate", "vest", "cloth", "鎧"}},
			{Value: "Weapon", Keywords: []string{
				"sword", "blade", "dagger", "knife", "axe", "staff", "rod", "wand", "spear", "lance",
				"bow", "hammer", "mace", "nunchaku", "claw", "katana", "剣", "刀", "斧", "杖", "槍", "弓",
			}},
			{Value: "Consumable", Keywords: []string{"potion", "ether", "elixir", "antidote", "remedy", "tent", "cabin", "phoenix", "tonic", "drop", "薬"}},
		},
		Effects: map[string]EffectRule{
			"heal":      {Target: "Single Ally", Type: "Restore HP"},
			"cure":      {Target: "Single Ally", Type: "Restore HP"},
			"potion":    {Target: "Single Ally", Type: "Restore HP"},
			"healall":   {Target: "All Allies", Type: "Restore HP"},
			"cura":      {Target: "All Allies", Type: "Restore HP"},
			"mp":        {Target: "Single Ally", Type: "Restore MP"},
			"ether":     {Target: "Single Ally", Type: "Restore MP"},
			"restoremp": {Target: "Single Ally", Type: "Restore MP"},
			"detox":     {Target: "Single Ally", Type: "Cure Status", Status: []string{"poison"}},
			"antidote":  {Target: "Single Ally", Type: "Cure Status", Status: []string{"poison"}},
			"poisona":   {Target: "Single Ally", Type: "Cure Status", Status: []string{"poison"}},
			"unpara":    {Target: "Single Ally", Type: "Cure Status", Status: []string{"paralysis"}},
			"numb":      {Target: "Single Ally", Type: "Cure Status", Status: []string{"paralysis"}},
			"stona":     {Target: "Single Ally", Type: "Cure Status", Status: []string{"stone"}},
			"soft":      {Target: "Single Ally", Type: "Cure Status", Status: []string{"stone"}},
			"awake":     {Target: "Single Ally", Type: "Cure Status", Status: []string{"sleep"}},
			"eyedrop":   {Target: "Single Ally", Type: "Cure Status", Status: []string{"blind"}},
			"esuna": {Target: "Single Ally", Type: "Cure Status", Status: []string{
				"poison", "paralysis", "sleep", "silence", "blind", "stone", "confusion",
			}},
			"revive":  {Target: "Single Ally", Type: "Revive", Status: []string{"death"}},
			"life":    {Target: "Single Ally", Type: "Revive", Status: []string{"death"}},
			"raise":   {Target: "Single Ally", Type: "Revive", Status: []string{"death"}},
			"elixir":  {Target: "Single Ally", Type: "Full Restore"},
			"rest":    {Target: "All Allies", Type: "Full Restore"},
			"tent":    {Target: "All Allies", Type: "Full Restore"},
			"damage":  {Target: "Single Enemy", Type: "Damage"},
			"bomb":    {Target: "All Enemies", Type: "Damage"},
			"escape":  {Target: "Party", Type: "Escape"},
			"warp":    {Target: "Party", Type: "Escape"},
			"silence": {Target: "Single Enemy", Type: "Inflict Status", Status: []string{"silence"}},
			"sleep":   {Target: "Single Enemy", Type: "Inflict Status", Status: []string{"sleep"}},
		},
		StatAliases: map[string]string{
			"str": "power", "pow": "power", "power": "power",
			"spd": "speed", "agi": "speed", "speed": "speed",
			"int": "intelligence", "intel": "intelligence", "intelligence": "intelligence", "mag": "intelligence",
			"sta": "stamina", "vit": "stamina", "stamina": "stamina",
			"lck": "luck", "luk": "luck", "luck": "luck",
			"wp": "weapon_power", "atk": "weapon_power", "attack": "weapon_power",
			"dex": "dexterity", "hit": "dexterity", "acc": "dexterity", "dexterity": "dexterity",
			"def": "armor", "arm": "armor", "ap": "armor", "armor": "armor",
			"eva": "evasion", "evd": "evasion", "evasion": "evasion",
		},
		SpellElements: []Rule{
			{Value: "Healing", Keywords: []string{"cure", "cura", "heal", "life", "raise", "regen", "回復", "ケアル"}},
			{Value: "Fire", Keywords: []string{"fire", "fira", "flame", "blaze", "炎", "ファイア"}},
			{Value: "Ice", Keywords: []string{"ice", "blizz", "frost", "氷", "ブリザド"}},
			{Value: "Lightning", Keywords: []string{"thund", "bolt", "lightning", "雷", "サンダー"}},
			{Value: "Poison", Keywords: []string{"poison", "bio", "venom", "毒"}},
			{Value: "Dark", Keywords: []string{"dark", "death", "doom", "shadow", "闇"}},
			{Value: "Holy", Keywords: []string{"holy", "light", "smite", "聖", "光"}},
			{Value: "Earth", Keywords: []string{"quake", "earth", "stone", "rock", "土"}},
			{Value: "Wind", Keywords: []string{"aero", "wind", "tornado", "風"}},
			{Value: "Water", Keywords: []string{"water", "aqua", "flood", "水"}},
		},
		SpellAreaKeywords: []string{"all", "-ga", "storm", "quake", "nova", "全体"},
		SpellAllyKeywords: []string{"protect", "shell", "haste", "invis", "wall", "prot", "守"},
		MonsterAffinities: []AffinityRule{
			{
				Keywords:    []string{"zombie", "skeleton", "ghoul", "ghost", "mummy", "wraith", "undead", "bone", "骸骨", "ゾンビ"},
				Weaknesses:  []string{"Fire", "Holy"},
				Resistances: []string{"Dark", "Poison"},
			},
			{
				Keywords:    []string{"fire", "flame", "salamander", "lava", "magma", "炎"},
				Weaknesses:  []string{"Ice", "Water"},
				Resistances: []string{"Fire"},
			},
			{
				Keywords:    []string{"ice", "frost", "snow", "frozen", "氷"},
				Weaknesses:  []string{"Fire"},
				Resistances: []string{"Ice"},
			},
			{
				Keywords:    []string{"fish", "shark", "squid", "crab", "sahagin", "kraken", "水"},
				Weaknesses:  []string{"Lightning"},
				Resistances: []string{"Water"},
			},
			{
				Keywords:    []string{"bat", "bird", "harpy", "wyvern", "cockatrice"},
				Weaknesses:  []string{"Wind"},
				Resistances: []string{"Earth"},
			},
			{
				Keywords:    []string{"plant", "tree", "mandragora", "vine", "treant"},
				Weaknesses:  []string{"Fire"},
				Resistances: []string{"Water", "Earth"},
			},
			{
				Keywords:    []string{"golem", "gargoyle", "statue"},
				Weaknesses:  []string{"Lightning"},
				Resistances: []string{"Poison"},
			},
			{
				Keywords:    []string{"slime", "jelly", "ooze", "pudding", "スライム"},
				Weaknesses:  []string{"Fire", "Ice"},
				Resistances: []string{},
			},
		},
		MapTilesets: []Rule{
			{Value: "town", Keywords: []string{"town", "village", "city", "port", "町", "村"}},
			{Value: "castle", Keywords: []string{"castle", "palace", "keep", "城"}},
			{Value: "dungeon", Keywords: []string{"cave", "dungeon", "tower", "ruins", "temple", "crypt", "mine", "shrine", "洞窟", "ダンジョン"}},
			{Value: "overworld", Keywords: []string{"world", "continent", "overworld"}},
		},
		TilesetEncounters: map[string]int{
			"town":      0,
			"castle":    0,
			"dungeon":   12,
			"overworld": 8,
			"field":     DefaultEncounter,
		},
		BattleBackgrounds: []Rule{
			{Value: "dungeon", Keywords: []string{"cave", "dungeon", "tower", "crypt", "ruins", "mine"}},
			{Value: "castle", Keywords: []string{"castle", "throne", "palace"}},
			{Value: "forest", Keywords: []string{"forest", "woods", "jungle"}},
			{Value: "sea", Keywords: []string{"sea", "ship", "ocean", "kraken"}},
			{Value: "desert", Keywords: []string{"desert", "sand"}},
		},
		BossKeywords: []string{"boss", "king", "lord", "fiend", "chaos", "demon", "dragon", "魔王", "ボス"},
		NPCRoles: []Rule{
			{Value: "Royalty", Keywords: []string{"king", "queen", "prince", "princess", "王"}},
			{Value: "Merchant", Keywords: []string{"shop", "merchant", "vendor", "trader", "商人"}},
			{Value: "Innkeeper", Keywords: []string{"inn", "宿"}},
			{Value: "Guard", Keywords: []string{"guard", "soldier", "knight", "sentry", "兵"}},
			{Value: "Sage", Keywords: []string{"sage", "elder", "wizard", "scholar", "長老"}},
			{Value: "Priest", Keywords: []string{"priest", "cleric", "nun", "神官"}},
			{Value: "Child", Keywords: []string{"child", "boy", "girl", "kid"}},
		},
		QuestKeywords: []string{"please help", "quest", "bring me", "find my", "rescue", "頼む"},
	}
}
