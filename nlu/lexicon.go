package nlu

// Canned replies. Callers pick one of Greetings or Farewells at random; tests
// should check membership rather than equality.
var (
	Greetings = []string{
		"Hi! Welcome to Speedy Bites! How can I help you today?",
		"Hello! Welcome to Speedy Bites! What would you like?",
		"Hey there! Welcome to Speedy Bites! What can I do for you?",
	}

	Farewells = []string{
		"Bye! Have a great day!",
		"See you soon!",
		"Thanks for visiting Speedy Bites!",
	}

	Fallback = "Sorry, I didn't understand that. I can help with menu, opening hours, branches, or FAQs."

	BrandAnswer = "Speedy Bites is a fast food brand famous for its crispy Zinger burgers, loaded fries " +
		"and hand-stretched pizzas, made fresh to order at every branch."

	HalalAnswer = "Yes! All of our meat is 100% halal and sourced from certified suppliers."

	DeliveryAnswer = "Yes, we deliver! Order through our website or call your nearest branch."
)

// Exact-phrase shortcuts for UI button captions, matched against the whole
// normalized message.
var captionIntents = map[string]Intent{
	"show me the menu":        MenuQuery,
	"what are your hours":     HoursQuery,
	"where are your branches": BranchQuery,
	"do you offer delivery":   FAQQuery,
	"full menu":               MenuQuery,
	"view menu":               MenuQuery,
	"order online":            MenuQuery,
	"our branches":            BranchQuery,
	"opening hours":           HoursQuery,
	"contact":                 BranchQuery,
}

var (
	menuKeywords  = []string{"menu", "show all", "all dishes", "all items"}
	priceKeywords = []string{"price", "how much", "cost"}

	farewellWords   = []string{"bye", "goodbye", "farewell", "ciao", "adios", "cya"}
	farewellPhrases = []string{"see you", "see ya", "take care", "good night"}

	halalKeywords = []string{"halal", "haram"}

	brandKeywords = []string{
		"what is speedy bites", "brand", "company", "famous",
		"speciality", "specialty", "who are we", "who are you", "about you", "tell me about",
	}
	aboutKeywords = []string{"mission", "about us", "your story", "history"}

	locationKeywords = []string{"branch", "location", "address", "where", "outlet", "phone", "contact"}
	timeKeywords     = []string{"hour", "open", "time", "when", "timing", "closing", "schedule"}
	deliveryKeywords = []string{"deliver"}
	faqTopicWords = []string{
		"vegetarian", "vegan", "payment", "payments", "pay", "card", "cards", "cash",
		"parking", "park", "reservation", "reservations", "reserve", "book", "booking",
		"wifi", "kids", "children",
	}

	// Matched anywhere in the text, so "burgers" and "cheeseburger" count.
	foodKeywords = []string{"burger", "pizza", "pasta", "fries", "drink", "dish", "food", "item", "order"}
	// Matched as whole words: "deal" must not fire on "ideal".
	foodWords = []string{
		"sandwich", "sandwiches", "wing", "wings", "nugget", "nuggets", "shake", "shakes",
		"dessert", "desserts", "deal", "deals", "roll", "rolls", "wrap", "wraps", "soup", "soups",
		"coffee", "chicken", "zinger", "hungry",
	}

	greetingWords   = []string{"hi", "hello", "hey", "salam", "assalam", "greetings"}
	greetingPhrases = []string{"good morning", "good afternoon", "good evening", "hi there", "hello there"}
)
