package poe2

import "encoding/json"

// ItemInfo is the display metadata of a traded or listed item, carried
// through to the dashboard unchanged. Fields the accounting core never
// interprets stay as raw JSON.
type ItemInfo struct {
	ItemName        string          `json:"item_name"`
	BaseType        string          `json:"base_type"`
	Rarity          string          `json:"rarity"`
	Icon            string          `json:"icon"`
	ItemLevel       int             `json:"ilvl"`
	Corrupted       bool            `json:"corrupted"`
	DoubleCorrupted bool            `json:"double_corrupted"`
	Sanctified      bool            `json:"sanctified"`
	ImplicitMods    []string        `json:"implicit_mods"`
	ExplicitMods    []string        `json:"explicit_mods"`
	EnchantMods     []string        `json:"enchant_mods"`
	DesecratedMods  []string        `json:"desecrated_mods"`
	FracturedMods   []string        `json:"fractured_mods"`
	FlavourText     []string        `json:"flavour_text"`
	FrameType       int             `json:"frame_type"`
	TypeLine        string          `json:"type_line"`
	Properties      json.RawMessage `json:"properties"`
	Sockets         json.RawMessage `json:"sockets"`
	SocketedItems   json.RawMessage `json:"socketed_items"`
	RuneMods        []string        `json:"rune_mods"`
	GrantedSkills   json.RawMessage `json:"granted_skills"`
	ExtendedMods    json.RawMessage `json:"extended_mods"`
	ExtendedHashes  json.RawMessage `json:"extended_hashes"`
}

// rawItem is the item object as the trade API serves it.
type rawItem struct {
	Name            string          `json:"name"`
	TypeLine        string          `json:"typeLine"`
	BaseType        string          `json:"baseType"`
	Rarity          string          `json:"rarity"`
	Icon            string          `json:"icon"`
	ItemLevel       int             `json:"ilvl"`
	Corrupted       bool            `json:"corrupted"`
	DoubleCorrupted bool            `json:"doubleCorrupted"`
	Sanctified      bool            `json:"sanctified"`
	ImplicitMods    []string        `json:"implicitMods"`
	ExplicitMods    []string        `json:"explicitMods"`
	EnchantMods     []string        `json:"enchantMods"`
	DesecratedMods  []string        `json:"desecratedMods"`
	FracturedMods   []string        `json:"fracturedMods"`
	FlavourText     []string        `json:"flavourText"`
	FrameType       int             `json:"frameType"`
	Properties      json.RawMessage `json:"properties"`
	Sockets         json.RawMessage `json:"sockets"`
	SocketedItems   json.RawMessage `json:"socketedItems"`
	RuneMods        []string        `json:"runeMods"`
	GrantedSkills   json.RawMessage `json:"grantedSkills"`
	Extended        struct {
		Mods   json.RawMessage `json:"mods"`
		Hashes json.RawMessage `json:"hashes"`
	} `json:"extended"`
}

func (it rawItem) info() ItemInfo {
	name := it.Name
	if name == "" {
		name = it.TypeLine
	}
	if name == "" {
		name = "Unknown"
	}
	return ItemInfo{
		ItemName:        name,
		BaseType:        it.BaseType,
		Rarity:          it.Rarity,
		Icon:            it.Icon,
		ItemLevel:       it.ItemLevel,
		Corrupted:       it.Corrupted,
		DoubleCorrupted: it.DoubleCorrupted,
		Sanctified:      it.Sanctified,
		ImplicitMods:    it.ImplicitMods,
		ExplicitMods:    it.ExplicitMods,
		EnchantMods:     it.EnchantMods,
		DesecratedMods:  it.DesecratedMods,
		FracturedMods:   it.FracturedMods,
		FlavourText:     it.FlavourText,
		FrameType:       it.FrameType,
		TypeLine:        it.TypeLine,
		Properties:      it.Properties,
		Sockets:         it.Sockets,
		SocketedItems:   it.SocketedItems,
		RuneMods:        it.RuneMods,
		GrantedSkills:   it.GrantedSkills,
		ExtendedMods:    it.Extended.Mods,
		ExtendedHashes:  it.Extended.Hashes,
	}
}
