package textwm

// defaultSynonyms is the curated substitution table for the bias channel.
// Entries are register-preserving near-exact replacements only; anything
// with a meaningful register or nuance shift stays out, which bounds the
// semantic cost of the statistical channel.
var defaultSynonyms = map[string]string{
	"aid":        "help",
	"allow":      "permit",
	"answer":     "reply",
	"ask":        "inquire",
	"begin":      "start",
	"big":        "large",
	"buy":        "purchase",
	"choose":     "select",
	"close":      "shut",
	"correct":    "right",
	"demonstrate": "show",
	"difficult":  "hard",
	"discover":   "find",
	"end":        "finish",
	"enough":     "sufficient",
	"error":      "mistake",
	"fast":       "quick",
	"finish":     "complete",
	"fix":        "repair",
	"get":        "obtain",
	"glad":       "happy",
	"happy":      "glad",
	"hard":       "difficult",
	"help":       "assist",
	"huge":       "enormous",
	"ill":        "sick",
	"important":  "significant",
	"keep":       "retain",
	"large":      "big",
	"last":       "final",
	"little":     "small",
	"maybe":      "perhaps",
	"method":     "approach",
	"near":       "close",
	"need":       "require",
	"new":        "novel",
	"odd":        "strange",
	"often":      "frequently",
	"old":        "ancient",
	"perhaps":    "maybe",
	"pick":       "choose",
	"quick":      "fast",
	"quickly":    "rapidly",
	"require":    "need",
	"reply":      "answer",
	"sad":        "unhappy",
	"show":       "display",
	"shut":       "close",
	"sick":       "ill",
	"simple":     "easy",
	"small":      "little",
	"start":      "begin",
	"stop":       "halt",
	"strange":    "odd",
	"sufficient": "enough",
	"total":      "entire",
	"try":        "attempt",
	"use":        "employ",
	"usually":    "typically",
	"whole":      "entire",
	"wrong":      "incorrect",
}
