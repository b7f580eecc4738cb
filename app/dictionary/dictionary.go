package dictionary

// NoPartOfSpeech is reported when an entry region carries no part-of-speech marker.
const NoPartOfSpeech = "N/A"

// Definition holds a single sense of a word. Depth is 0 for top-level
// senses and grows by one for every level of sub-sense nesting; sub-senses
// follow their parent in document order.
type Definition struct {
	Level   string  `json:"level"`
	Text    string  `json:"text"`
	Style   *string `json:"style,omitempty"`
	Example *string `json:"example,omitempty"`
	Depth   int     `json:"depth"`
}

// Entry holds a complete dictionary entry for a single headword. A query
// may resolve to several entries (homographs); each is parsed independently.
type Entry struct {
	Headword      string       `json:"headword"`
	PartOfSpeech  string       `json:"part_of_speech"`
	Pronunciation *string      `json:"pronunciation,omitempty"`
	Inflections   string       `json:"inflections"`
	Etymology     *string      `json:"etymology,omitempty"`
	Definitions   []Definition `json:"definitions"`
	Synonyms      []string     `json:"synonyms"`
}
