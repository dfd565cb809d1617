package catalog

import "github.com/KirkDiggler/dnd-sheet-engine/internal/domain/shared"

// BuiltinTemplates returns the declarative catalog of tracked class
// features. Formulas reference the evaluator's vocabulary: fixed:<n>,
// level, ability-modifier tokens, proficiency_bonus, arithmetic over
// those, or a named progression table.
func BuiltinTemplates() []*Template {
	return []*Template{
		{
			Key:         "bardic-inspiration",
			Title:       "Bardic Inspiration",
			Subtitle:    "Bonus Action",
			Kind:        shared.KindSlots,
			Class:       "bard",
			Level:       1,
			Description: "As a bonus action, grant one creature other than yourself a {dice} Bardic Inspiration die. You can use this feature {charisma_modifier} times, and regain all expended uses when you finish a short or long rest.",
			Slots: &SlotsConfig{
				UsesFormula: "charisma_modifier",
				DiceByLevel: []int{
					6, 6, 6, 6, 8, 8, 8, 8, 8, 10,
					10, 10, 10, 10, 12, 12, 12, 12, 12, 12,
				},
				Timing:       shared.RestTypeShort,
				DisplayStyle: "pips",
			},
		},
		{
			Key:         "second-wind",
			Title:       "Second Wind",
			Subtitle:    "Bonus Action",
			Kind:        shared.KindSlots,
			Class:       "fighter",
			Level:       1,
			Description: "On your turn, you can use a bonus action to regain hit points equal to 1d10 + {level}. Once you use this feature, you must finish a short or long rest before you can use it again.",
			Slots: &SlotsConfig{
				UsesFormula:  "fixed:1",
				Timing:       shared.RestTypeShort,
				DisplayStyle: "pips",
			},
		},
		{
			Key:         "action-surge",
			Title:       "Action Surge",
			Kind:        shared.KindSlots,
			Class:       "fighter",
			Level:       2,
			Description: "You can push yourself beyond your normal limits for a moment. On your turn, you can take one additional action.",
			Slots: &SlotsConfig{
				UsesFormula:  "fixed:1",
				Timing:       shared.RestTypeShort,
				DisplayStyle: "pips",
			},
		},
		{
			Key:         "rage",
			Title:       "Rage",
			Subtitle:    "Bonus Action",
			Kind:        shared.KindSlots,
			Class:       "barbarian",
			Level:       1,
			Description: "In battle, you fight with primal ferocity. As a bonus action, you can enter a rage for 1 minute. You can rage {rage_uses} times per long rest.",
			Slots: &SlotsConfig{
				UsesFormula:  "rage_uses",
				Timing:       shared.RestTypeLong,
				DisplayStyle: "pips",
			},
			Override: map[string]any{
				"rage_uses": "a limited number of",
			},
		},
		{
			Key:         "channel-divinity",
			Title:       "Channel Divinity",
			Kind:        shared.KindSlots,
			Class:       "cleric",
			Level:       2,
			Description: "You can channel divine energy directly from your deity, using that energy to fuel magical effects.",
			Slots: &SlotsConfig{
				UsesFormula:  "channel_divinity_uses",
				Timing:       shared.RestTypeShort,
				DisplayStyle: "pips",
			},
		},
		{
			Key:         "flash-of-genius",
			Title:       "Flash of Genius",
			Subtitle:    "Reaction",
			Kind:        shared.KindSlots,
			Class:       "artificer",
			Level:       7,
			Description: "When you or another creature you can see within 30 feet makes an ability check or a saving throw, you can use your reaction to add {intelligence_modifier} to the roll. You can use this reaction {intelligence_modifier} times per long rest.",
			Slots: &SlotsConfig{
				UsesFormula:  "intelligence_modifier",
				Timing:       shared.RestTypeLong,
				DisplayStyle: "pips",
			},
		},
		{
			Key:         "lay-on-hands",
			Title:       "Lay on Hands",
			Subtitle:    "Action",
			Kind:        shared.KindPointsPool,
			Class:       "paladin",
			Level:       1,
			Description: "You have a pool of healing power that replenishes when you take a long rest. With that pool, you can restore a total number of hit points equal to {total}.",
			Points: &PointsConfig{
				TotalFormula: "level * 5",
				PartialSpend: true,
				Timing:       shared.RestTypeLong,
				MinSpend:     1,
			},
			Override: map[string]any{
				"total": "your paladin level times 5",
			},
		},
		{
			Key:         "ki-points",
			Title:       "Ki",
			Kind:        shared.KindPointsPool,
			Class:       "monk",
			Level:       2,
			Description: "Your training allows you to harness the mystic energy of ki. You have {level} ki points to spend on ki features such as Flurry of Blows, Patient Defense, and Step of the Wind.",
			Points: &PointsConfig{
				TotalFormula: "level",
				PartialSpend: true,
				Timing:       shared.RestTypeShort,
				MinSpend:     1,
				MaxSpend:     6,
			},
		},
		{
			Key:         "sorcery-points",
			Title:       "Sorcery Points",
			Kind:        shared.KindPointsPool,
			Class:       "sorcerer",
			Level:       2,
			Description: "You have {level} sorcery points, which allow you to create a variety of magical effects and fuel your Metamagic.",
			Points: &PointsConfig{
				TotalFormula: "level",
				PartialSpend: true,
				Timing:       shared.RestTypeLong,
				MinSpend:     1,
			},
		},
		{
			Key:         "eldritch-invocations",
			Title:       "Eldritch Invocations",
			Kind:        shared.KindOptionsList,
			Class:       "warlock",
			Level:       2,
			Description: "In your study of occult lore, you have unearthed eldritch invocations, fragments of forbidden knowledge that imbue you with an abiding magical ability. You know {invocations_known} invocations.",
			Options: &OptionsConfig{
				MaxFormula:  "invocations_known",
				Source:      OptionSourceCatalog,
				CatalogName: "eldritch-invocations",
				MinLevel:    2,
				Swappable:   true,
			},
			Override: map[string]any{
				"invocations_known": "a number of",
			},
		},
		{
			Key:         "mystic-arcanum",
			Title:       "Mystic Arcanum",
			Kind:        shared.KindOptionsList,
			Class:       "warlock",
			Level:       11,
			Description: "Your patron bestows upon you a magical secret called an arcanum. Choose one 6th-level spell from the warlock spell list as this arcanum. You can cast your arcanum spell once without expending a spell slot.",
			Options: &OptionsConfig{
				MaxFormula: "fixed:1",
				Source:     OptionSourceSpells,
				SpellLevel: 6,
				MinLevel:   11,
			},
		},
		{
			Key:         "artificer-infusions",
			Title:       "Infuse Item",
			Kind:        shared.KindOptionsList,
			Class:       "artificer",
			Level:       2,
			Description: "You have learned how to invest a spark of magic into mundane objects. You know a number of infusions and can swap one each time you gain an artificer level.",
			Options: &OptionsConfig{
				MaxFormula:  "infusions_known",
				Source:      OptionSourceCatalog,
				CatalogName: "artificer-infusions",
				MinLevel:    2,
				Swappable:   true,
			},
		},
		{
			Key:         "metamagic",
			Title:       "Metamagic",
			Kind:        shared.KindOptionsList,
			Class:       "sorcerer",
			Level:       3,
			Description: "You gain the ability to twist your spells to suit your needs, choosing Metamagic options that change how your spells behave.",
			Options: &OptionsConfig{
				MaxFormula:  "metamagic_known",
				Source:      OptionSourceCatalog,
				CatalogName: "metamagic",
				MinLevel:    3,
				Swappable:   true,
			},
		},
		{
			Key:         "fighting-style",
			Title:       "Fighting Style",
			Kind:        shared.KindOptionsList,
			Class:       "fighter",
			Level:       1,
			Description: "You adopt a particular style of fighting as your specialty. You can't take the same Fighting Style option more than once.",
			Options: &OptionsConfig{
				MaxFormula: "fixed:1",
				Source:     OptionSourceCustom,
			},
		},
		{
			Key:         "wild-shape",
			Title:       "Wild Shape",
			Subtitle:    "Action",
			Kind:        shared.KindSpecialUX,
			Class:       "druid",
			Level:       2,
			Description: "You can use your action to magically assume the shape of a beast that you have seen before. You can use this feature twice, and regain expended uses when you finish a short or long rest.",
			Special: &SpecialConfig{
				Module: "wild-shape",
				Settings: map[string]any{
					"uses":         2,
					"max_cr":       "1/4",
					"restrictions": "no flying or swimming speed",
					// merged into custom state on a qualifying rest
					"on_rest": map[string]any{
						"uses_remaining": 2,
						"active_form":    "",
					},
				},
				Timing: shared.RestTypeShort,
			},
		},
		{
			Key:         "jack-of-all-trades",
			Title:       "Jack of All Trades",
			Kind:        shared.KindSkillModifier,
			Class:       "bard",
			Level:       2,
			Description: "You can add {modifier} to any ability check you make that doesn't already include your proficiency bonus.",
			Modifier: &ModifierConfig{
				CheckTypes: []string{"ability_check"},
				Formula:    "proficiency_bonus / 2",
				Condition:  "not_proficient",
				Stacks:     false,
			},
			Override: map[string]any{
				"modifier": "half your proficiency bonus, rounded down,",
			},
		},
		{
			Key:         "remarkable-athlete",
			Title:       "Remarkable Athlete",
			Kind:        shared.KindSkillModifier,
			Class:       "fighter",
			Subclass:    "champion",
			Level:       7,
			Description: "You can add {modifier} to any Strength, Dexterity, or Constitution check you make that doesn't already use your proficiency bonus.",
			Modifier: &ModifierConfig{
				CheckTypes: []string{"ability_check", "initiative"},
				Abilities:  []string{"strength", "dexterity", "constitution"},
				Formula:    "proficiency_bonus / 2",
				Condition:  "not_proficient",
				Stacks:     false,
			},
			Override: map[string]any{
				"modifier": "half your proficiency bonus, rounded up,",
			},
		},
		{
			Key:         "arcane-recovery",
			Title:       "Arcane Recovery",
			Kind:        shared.KindAvailabilityToggle,
			Class:       "wizard",
			Level:       1,
			Description: "Once per day when you finish a short rest, you can choose expended spell slots to recover with a combined level of {slots} or less.",
			Toggle: &ToggleConfig{
				DefaultAvailable: true,
				Timing:           shared.RestTypeDawn,
				AvailableText:    "Available",
				ExpendedText:     "Used today",
			},
			Override: map[string]any{
				"slots": "half your wizard level (rounded up)",
			},
		},
		{
			Key:         "indomitable",
			Title:       "Indomitable",
			Kind:        shared.KindAvailabilityToggle,
			Class:       "fighter",
			Level:       9,
			Description: "You can reroll a saving throw that you fail. If you do so, you must use the new roll.",
			Toggle: &ToggleConfig{
				DefaultAvailable: true,
				Timing:           shared.RestTypeLong,
				AvailableText:    "Ready",
				ExpendedText:     "Expended",
			},
		},
	}
}
