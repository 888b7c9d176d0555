// internal/common/lexicon/de.go
package lexicon

// German vocabulary used by the sales pipeline. Entries are lowercase; the
// matching helpers in textnorm normalize them before comparison. These
// values are read-only.

var (
	Currency = []string{"€", "eur", "euro", "bucks", "dollar"}

	BudgetWords = []string{
		"budget", "preisrahmen", "preislimit", "preisspanne", "preisgrenze",
		"obergrenze", "untergrenze", "kosten", "kostet", "teuer", "günstig", "billig", "preis",
	}

	UnderPhrases = []string{
		"unter", "bis maximal", "bis max", "bis höchstens", "höchstens", "hoechstens",
		"nicht mehr als", "weniger als", "maximal", "max",
	}

	OverPhrases = []string{"über", "ueber", "uber", "mindestens", "mehr als", "ab"}

	BetweenWords = []string{"zwischen", "between"}

	// ExplicitOver and ExplicitUnder drive the direction post-pass.
	ExplicitOver  = []string{"über", "ueber", "uber"}
	ExplicitUnder = []string{"unter", "bis", "höchstens", "hochstens", "hoechstens", "max", "maximal"}

	CheapWords = []string{
		"günstig", "billig", "preiswert", "erschwinglich", "nicht zu teuer", "eher günstig",
	}

	SmallBudgetPhrases = []string{"kleines budget", "minimales budget", "wenig geld", "kaum geld"}

	// BudgetSmalltalk are phrases talking about money without naming an amount.
	BudgetSmalltalk = []string{
		"mein budget ist begrenzt", "mein budget ist klein", "mein budget ist sehr klein",
		"ich habe ein kleines budget", "ich habe ein begrenztes budget",
		"ich habe nicht viel geld", "ich bin knapp bei kasse",
		"ich habe wenig geld", "ich habe kaum geld", "ich habe nur wenig geld",
		"ich habe nicht genug geld",
	}

	BudgetWordPatterns = []string{
		"mein budget", "ich habe ein budget", "ich habe budget", "budget von",
		"budget liegt", "budget so bei", "budget bei",
	}

	UnitWords = []string{"zoll", "inch", "inches", "tb", "gb", "mb", "ml", "cm", "mm", "kg", "liter", "watt"}

	// GluedUnitSuffixes only count when attached to the number, as in "5l".
	GluedUnitSuffixes = append(append([]string(nil), UnitWords...), "l")

	BudgetStopwords = []string{
		"budget", "preis", "preise", "preisspanne", "euro", "eur", "€", "unter", "über", "ueber",
		"bis", "ca", "etwa", "ungefähr", "von", "maximal", "max", "mindestens", "höchstens",
		"hoechstens", "zwischen", "und", "ab", "kosten", "kostet", "geld",
	}
)

// CategoryKeywords maps a category slug to words that hint at it.
var CategoryKeywords = []CategoryKeyword{
	{Slug: "elektronik", Words: []string{
		"elektronik", "elektrische geräte", "elektrisches gerät", "smartphone", "smartphones",
		"handy", "handys", "phone", "phones", "telefon", "mobiltelefon", "iphone", "android", "galaxy",
	}},
	{Slug: "mode", Words: []string{
		"mode", "fashion", "kleidung", "bekleidung", "oberteil", "oberteile", "t-shirt", "tshirts",
		"shirt", "shirts", "pullover", "hoodie", "hoodies", "sweatshirt", "jacke", "jacken",
	}},
	{Slug: "snowboard", Words: []string{"snowboard", "snowboards"}},
	{Slug: "bindungen", Words: []string{
		"bindungen", "bindung", "binding", "bindings", "snowboard-bindungen", "snowboard-bindung",
		"snowboardbindungen", "snowboardbindung",
	}},
	{Slug: "haushalt", Words: []string{
		"haushalt", "putzen", "reiniger", "reinigung", "küche", "bad", "wasserkocher",
		"electric kettle", "kettle", "haushaltsgeräte", "küchengerät", "haushaltsgerät", "kocher",
	}},
	{Slug: "pflege", Words: []string{"pflege", "shampoo", "duschgel", "seife", "creme", "öl", "oel", "lotion"}},
	{Slug: "tierbedarf", Words: []string{
		"tier", "tierbedarf", "hund", "hunde", "welpe", "welpen", "katze", "katzen", "kater",
		"hündin", "futter", "leckerli", "haustier", "haustiere", "pets", "pet", "dog", "cat",
		"animal", "napf", "fressnapf",
	}},
	{Slug: "perfume", Words: []string{"perfume", "parfum", "parfüm", "duft", "eau de parfum", "eau de toilette"}},
	{Slug: "garten", Words: []string{
		"garten", "gartenartikel", "garten-artikel", "gartenbedarf", "gartenzubehör",
		"gartenzubehoer", "gartenprodukte",
	}},
	{Slug: "kosmetik", Words: []string{"kosmetik", "beauty", "pflegeprodukte", "hautpflege"}},
	{Slug: "werkzeug", Words: []string{"werkzeug", "tools", "werkzeugkoffer"}},
}

type CategoryKeyword struct {
	Slug  string
	Words []string
}

var (
	// ModeFalseFriends block the "mode" hint.
	ModeFalseFriends = []string{"modern", "moderne", "moderner", "modernes", "modernen", "modell", "modelle", "modem"}

	SmartphoneWords  = []string{"smartphone", "smartphones", "handy", "handys", "iphone", "android", "phone"}
	PetWords         = []string{"hund", "hunde", "dog", "katze", "katzen", "cat", "haustier", "haustiere", "pet", "pets", "tier", "tiere", "animal", "vierbeiner", "fressnapf"}
	ElectronicsWords = []string{"smartphone", "handy", "iphone", "android", "laptop", "tablet", "kopfhörer", "fernseher", "tv", "elektronik"}

	HumanSkinCategories = []string{"kosmetik", "pflege", "beauty", "hautpflege", "körperpflege"}

	IntentWords = []string{
		"premium", "beste", "hochwertig", "qualitaet", "qualitat", "qualität", "luxus", "teuer", "teure", "teuren",
		"teuerste", "teuersten", "teuerster", "billig", "guenstig", "günstig", "günstige", "günstigsten",
		"günstigste", "discount", "spar", "rabatt", "preis", "preise", "preiswert", "preiswerte", "deal",
		"bargain", "geschenk", "gift", "praesent", "present", "bundle", "set", "paket", "combo",
		"produkte", "produkt", "artikel", "artikeln", "ware", "waren", "sachen", "dinge", "items", "item",
		"unter", "ueber", "über", "bis", "maximal", "mindestens", "höchstens", "hoechstens", "weniger",
		"mehr", "zwischen", "euro", "eur", "zeig", "zeige", "zeigst", "mir", "was", "hast", "habe", "du",
		"gibt", "es", "inspiration", "suche", "suchen", "ich", "brauche", "bitte", "danke", "dankeschön",
		"meine", "deine", "und", "oder", "die", "der", "das", "den", "kategorie",
	}

	QueryStopwords = []string{
		"der", "die", "das", "den", "dem", "des", "ein", "eine", "einen", "einem", "einer", "eines",
		"und", "oder", "aber", "mit", "ohne", "für", "von", "zu", "zum", "zur", "mir", "mich", "dir",
		"ist", "sind", "bin", "habe", "hast", "hat", "haben", "kann", "kannst", "möchte", "will",
		"bitte", "auch", "noch", "mal", "gerne", "etwas", "was", "wie", "welche", "welcher", "welches",
		"ich", "du", "wir", "ihr", "sie", "es", "mein", "meine", "dein", "deine", "nicht", "sehr",
		"zeige", "zeig", "zeigen", "suche", "suchen", "brauche", "gibt", "euch", "uns", "dich",
		"nur", "gern", "schon", "ganz", "so", "ja", "eigentlich", "vielleicht",
	}

	AttributePhrases = []string{
		"trockene haut", "empfindliche haut", "sensible haut", "trockene haare", "für herren",
		"für damen", "für kinder", "für männer", "für frauen", "für bad", "für küche",
		"für wohnung", "für haustiere", "für hunde", "für katzen",
	}

	AttributeKeywords = []string{
		"trockene", "empfindliche", "sensible", "herren", "damen", "kinder", "männer", "frauen",
		"vegan", "bio", "organic", "xxl", "xl", "haut", "haare", "bad", "küche", "wohnung",
	}

	NonCodeTerms = []string{
		"zeige", "zeig", "mir", "bitte", "produkt", "produkte", "artikel", "code", "sku", "nummer",
		"num", "preis", "euro", "budget", "ich", "du", "er", "sie", "wir", "ihr", "habe", "hast",
		"hat", "haben", "unter", "über", "bis", "ca", "etwa", "ungefähr", "von",
	}

	CodeStopwords = []string{
		"kannst", "du", "mir", "zeigen", "zeige", "zeig", "bitte", "ich", "suche", "ein", "eine",
		"einen", "produkt", "produkte", "artikel", "kann", "können", "soll", "sollte", "möchte",
		"will", "würde", "er", "sie", "wir", "ihr", "habe", "hast", "hat", "haben", "budget", "preis",
		"euro", "unter", "über", "bis", "ca", "etwa", "ungefähr", "von", "den", "der", "die", "das",
		"gibt", "es", "hallo", "hi",
	}

	UnknownAIStopwords = []string{
		"ich", "du", "er", "sie", "es", "wir", "ihr", "mein", "meine", "dein", "deine", "sein",
		"seine", "unser", "unsere", "euer", "eure", "habe", "hast", "hat", "haben", "bin", "bist",
		"ist", "sind", "war", "waren", "naja", "äh", "also", "mal", "doch", "eben", "halt",
		"budget", "preis", "preise", "preisspanne", "euro", "unter", "über", "bis", "ca", "etwa",
		"ungefähr", "von", "nur", "noch", "etwas", "gerne", "gern", "bitte", "auch", "schon",
		"ganz", "sehr", "ja", "so", "was", "wie", "kann", "kannst", "möchte", "will", "ein",
		"eine", "einen", "für", "mit", "mir", "mich", "der", "die", "das", "den", "dem",
		"eigentlich", "vielleicht",
	}

	ShowMePatterns = []string{"zeige mir", "zeig mir", "zeig mal", "show me"}

	PerfumeSynonyms = []string{"parfum", "parfüm", "parfume", "perfüm", "perfume"}

	PremiumTokens = []string{
		"zeige", "zeig", "mir", "mich", "premium", "beste", "hochwertig", "luxus", "teuer",
		"teuerste", "teuersten", "teuerster",
	}

	PremiumWords = []string{
		"premium", "beste", "hochwertig", "qualitaet", "qualitat", "qualität", "luxus", "teuer",
		"teuerste", "teuersten", "teuerster",
	}

	BargainWords = []string{
		"billig", "billige", "billiger", "billiges", "billigste", "billigstes", "billigsten",
		"guenstig", "günstig", "günstige", "günstiger", "günstiges", "günstigste", "günstigstes",
		"günstigsten", "preiswert", "preiswerte", "preiswerter", "preiswertes", "preiswerteste",
		"discount", "spar", "rabatt", "deal", "bargain",
	}

	GiftWords    = []string{"geschenk", "gift", "praesent", "präsent", "present"}
	BundleWords  = []string{"bundle", "set", "paket", "combo"}
	ExploreWords = []string{"zeig mir was", "inspiration", "zeige mir", "was hast du", "was gibt es"}

	MostExpensivePhrases = []string{
		"teuerste produkt", "teuersten produkt", "teuerster artikel", "teuerste artikel",
		"teuersten produkte", "höchsten preis", "höchste preis", "höchster preis", "most expensive",
		"das teuerste", "den teuersten", "die teuerste",
	}

	CheapestPhrases = []string{"günstigste", "günstigsten", "günstigstes", "billigste", "billigsten", "billigstes", "preiswerteste"}

	MoldKeywords        = []string{"schimmel", "schimmelentferner", "schimmel-reiniger", "schimmelreiniger", "anti-schimmel", "mold"}
	MoldCleanerKeywords = []string{"reiniger", "spray", "schimmelentferner", "anti-schimmel"}
	MoldWipeKeywords    = []string{"tuch", "tücher", "tuecher", "wipes"}

	BudgetKeywordsForScenario = []string{
		"budget", "preis", "maximal", "max", "höchstens", "hoechstens", "unter", "bis", "ab",
		"über", "euro", "eur", "€",
	}

	CategoryKeywordsForScenario = []string{"kategorie", "kategorien", "haushalt", "pflege", "tierbedarf", "kosmetik", "parfüm", "parfum"}

	ProductKeywordsForBudgetOnly = []string{
		"shampoo", "duschgel", "reiniger", "spray", "lotion", "creme", "parfüm", "parfum",
		"haushalt", "pflege", "tierbedarf",
	}

	BudgetOnlyStopwords = []string{"zeige", "zeig", "mir", "bitte", "produkt", "produkte", "artikel", "kategorie", "marke", "brand"}

	CoreProductKeywords = []string{
		"shampoo", "duschgel", "reiniger", "spray", "lotion", "creme", "cream", "seife", "soap",
		"tücher", "tuecher", "tuch", "wipes", "napf", "futternapf", "bindungen", "bindung",
		"binding", "bindings", "smartphone", "smartphones", "handy", "handys", "jeans", "schmutz",
		"verschmutz", "fleck", "flecken", "kalk", "reinigen", "reinigung", "entfernen",
		"anti-aging", "anti aging", "antiaging",
	}

	ContextKeywords = []string{
		"für die küche", "fürs bad", "fürs badezimmer", "fürs schlafzimmer", "für hunde",
		"für katzen", "für kinder",
	}

	ProductHints = []string{
		"duschgel", "shampoo", "gel", "öl", "seife", "hund", "katze", "spielzeug", "produkt",
		"shop", "kaufen", "preis", "kosten", "angebot", "rabatt", "größe", "groesse", "farbe",
		"haushalt", "kosmetik", "tiere", "haustier", "zeig", "suche", "finde", "empfehl",
		"vorschlag", "was", "welch", "haut", "haare", "pflege", "schmutz", "fleck", "kalk",
		"board", "budget", "euro", "teuer", "günstig", "billig", "geschenk",
	}

	OffTopicKeywords = []string{
		"politik", "wahl", "regierung", "krieg", "nachrichten", "chatgpt", "abonnement",
		"versicherung", "wetter", "fußball",
	}

	Greetings = []string{"hallo", "hi", "hey", "moin", "servus", "guten tag", "guten morgen", "guten abend", "danke", "dankeschön", "vielen dank", "tschüss"}
)

// ExplanationKeywords group the question types answered in explanation mode.
var ExplanationKeywords = map[string][]string{
	"ingredients": {"inhaltsstoff", "inhaltsstoffe", "zutaten", "ingredients"},
	"usage": {
		"wie verwende ich", "wie benutze ich", "wie nutze ich", "wie wende ich", "anwendung",
		"schritt für schritt",
	},
	"washing":   {"wie kann ich das waschen", "wie kann ich das reinigen", "wie wasche ich das", "waschhinweis", "pflegehinweis"},
	"materials": {"aus welchem material", "welches material", "materialzusammensetzung", "woraus besteht"},
}

// ExplanationOrder fixes the evaluation order of ExplanationKeywords.
var ExplanationOrder = []string{"ingredients", "usage", "washing", "materials"}

// Sales policy phrases.
var (
	DeliveryPhrases = []string{
		"liefern", "lieferung", "lieferzeit", "ankommen", "morgen da", "bis samstag", "spätestens",
		"versand", "versandkosten", "wann kommt",
	}

	ReturnPhrases = []string{
		"rückgabe", "retoure", "zurückschicken", "zurücksenden", "umtausch", "umtauschen", "garantie",
		"gewährleistung", "nicht passt", "nicht gefällt", "passt nicht", "gefällt nicht",
	}

	PriceObjectionPhrases = []string{
		"zu teuer", "preis ist hoch", "preis ist mir zu hoch", "zu hoch", "sehr teuer",
		"ist mir zu teuer", "mir zu teuer", "teuer ist mir", "kostet zu viel",
	}

	BuyIntentPhrases = []string{
		"kaufe", "kaufen", "nehme", "nehmen", "bestelle", "bestellen", "in den warenkorb",
		"was brauche ich noch",
	}

	VagueLifestyleWords = []string{"cool", "cooles", "coole", "cooler", "schönes", "was schönes", "irgendwas"}
	VagueUncertainty    = []string{"weiß nicht", "weiss nicht", "nicht genau", "keine ahnung"}

	BoardQualifiers = []string{"snow", "skate", "surf", "snowboard", "skateboard", "surfboard", "longboard", "wakeboard"}
)
