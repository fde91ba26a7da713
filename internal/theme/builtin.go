package theme

import "sync"

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It is built once and shared.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = NewCatalog(builtinThemes, builtinPresets)
	})
	return defaultCatalog
}

const giphy = "https://media1.giphy.com/media/"

var builtinThemes = []Theme{
	{
		ID:          "cute",
		Name:        "Cute stickers 🧸",
		Emoji:       "🧸",
		Description: "Bears, bunnies, hugs",
		Images: []string{
			giphy + "3oEjHV0z8S7WM4MwnK/giphy.gif",
			giphy + "OPU6wzx8JrHna/giphy.gif",
			giphy + "l0MYunAI4j10uWbTy/giphy.gif",
			giphy + "d2lcHJTzUCRrYDma/giphy.gif",
			giphy + "Qw4X3FnmFFCPANtlhtK/giphy.gif",
			giphy + "l0HlvtIPdJrkPMEBq/giphy.gif",
			giphy + "ISOckXDlJQdFi/giphy.gif",
		},
		CelebrationImage: giphy + "3oEjI4sFlp73fvEYgw/giphy.gif",
		DeclineMessages: []string{
			"No? Are you sure?.. 🥺",
			"Maybe you'll change your mind?.. 😢",
			"The bear is sad... 🧸💔",
			"Pleeease! 🥹",
			"I'll wait... forever 😭",
			"Last chance! 💝",
			"Seriously?! Look at this bear! 🐻",
			"Fine... just press Yes 😤❤️",
		},
		CelebrationMessage: "Yay!! 🎉💕 I knew it!!!",
		Gradient:           []string{"#ffecd2", "#fcb69f"},
		Accent:             "#ff6b6b",
	},
	{
		ID:          "dogs",
		Name:        "Puppies 🐶",
		Emoji:       "🐶",
		Description: "Sad and happy doggos",
		Images: []string{
			giphy + "4Zo41lhzKt6iZ8xff9/giphy.gif",
			giphy + "hxGlnfOLsMVzy/giphy.gif",
			giphy + "3o6wrvdHFbwBrUFtqo/giphy.gif",
			giphy + "VbnUQpnihPSIgIXuZv/giphy.gif",
			giphy + "W0c3xcZ3F1waI/giphy.gif",
			giphy + "fSYmbgG5Ij8EF1TBZL/giphy.gif",
			giphy + "ZBQhoZC0nqknSviPqT/giphy.gif",
		},
		CelebrationImage: giphy + "hZfm9Pj95F9Mk/giphy.gif",
		DeclineMessages: []string{
			"Woof?.. No?.. 🐕💔",
			"The puppy is upset... 🐶😢",
			"Look at these sad eyes now 🥺",
			"At least pet me... I mean, press Yes! 🐾",
			"The tail stopped wagging... 😭",
			"I'll fetch you a stick! Just press Yes!",
			"Woof-woof-woof (translation: PRESS YES) 🐕",
			"One last woof... 🐶❤️",
		},
		CelebrationMessage: "WOOF WOOF WOOF!!! 🐶🎉💕",
		Gradient:           []string{"#a8edea", "#fed6e3"},
		Accent:             "#e17055",
	},
	{
		ID:          "cats",
		Name:        "Kitties 🐱",
		Emoji:       "🐱",
		Description: "Sad and smug cats",
		Images: []string{
			giphy + "MDJ9IbxxvDUQM/giphy.gif",
			giphy + "BEob5qwFkSJ7G/giphy.gif",
			giphy + "VIPdgcooFJHtC/giphy.gif",
			giphy + "11BAxHG7paxJcI/giphy.gif",
			giphy + "qQB37BLnBCmyLNjJGB/giphy.gif",
			giphy + "13CoXDiaCcCoyk/giphy.gif",
			giphy + "BezRFKuvBnkKt5ozWp/giphy.gif",
		},
		CelebrationImage: giphy + "PoGEIYoaUBEoOWfDoj/giphy.gif",
		DeclineMessages: []string{
			"Meow?.. No?.. 🐱💔",
			"The kitty is shocked... 😿",
			"Whiskers drooping... 🐈😢",
			"Purr-purr-purr... press Yes... 🥺",
			"The kitty stopped purring 😭",
			"I'll knock the vase off the table if you don't press Yes! 🏺",
			"Seriously?! The kitty is crying! 😿😿😿",
			"One last meow... 🐱❤️",
		},
		CelebrationMessage: "MEEEOW!!! 🐱🎉💕 PURRRR!",
		Gradient:           []string{"#fdfcfb", "#e2d1c3"},
		Accent:             "#6c5ce7",
	},
	{
		ID:          "memes",
		Name:        "Memes 😂",
		Emoji:       "😂",
		Description: "The classics",
		Images: []string{
			giphy + "tXL4FHPSnVJ0A/giphy.gif",
			giphy + "l2JhORT5IFnj6ioko/giphy.gif",
			giphy + "OPU6wzx8JrHna/giphy.gif",
			giphy + "d2lcHJTzUCRrYDma/giphy.gif",
			giphy + "3ohzdIuqJoo8QdKlnW/giphy.gif",
			giphy + "ISOckXDlJQdFi/giphy.gif",
			giphy + "d10dMmzBFUVctG/giphy.gif",
		},
		CelebrationImage: giphy + "5GoVLqeAOo6PK/giphy.gif",
		DeclineMessages: []string{
			"Seriously? No?! 😐",
			"Oh, come on... 🤡",
			"Still waiting for your \"Yes\"... ⏳",
			"Is this a prank?! 😤",
			"Even Pedro is upset 🦝",
			"The hamster is shocked!!! 🐹",
			"Tobey Maguire is crying because of you! 😭",
			"Okay, press Yes, enough joking 😤❤️",
		},
		CelebrationMessage: "LEEEETS GOOOO!!! 🎉🕺💃",
		Gradient:           []string{"#667eea", "#764ba2"},
		Accent:             "#fd79a8",
	},
}

var builtinPresets = []Preset{
	{ID: "classic", Text: "Will you be my Valentine? 💝"},
	{ID: "forever", Text: "You are my everything. Will you be mine forever? 💍"},
	{ID: "flirty", Text: "Shall we be together on more than just February 14th? 😏"},
	{ID: "honest", Text: "I'm not good with words, but you're the best thing that ever happened to me ❤️"},
	{ID: "funny", Text: "You're my crush. And no, that's not up for debate. Press Yes 😤"},
	{ID: "romantic", Text: "Every day with you feels like a holiday. Be my Valentine? 🌹"},
}
