package nlp

// stopwords maps ISO 639-1 codes to common words excluded from keywords.
var stopwords = map[string]map[string]struct{}{
	"en": set(
		"about", "above", "after", "again", "against", "all", "also", "and", "any", "are",
		"aren't", "because", "been", "before", "being", "below", "between", "both", "but",
		"can", "cannot", "could", "did", "didn't", "does", "doesn't", "doing", "don't",
		"down", "during", "each", "few", "for", "from", "further", "had", "has", "hasn't",
		"have", "having", "her", "here", "hers", "herself", "him", "himself", "his", "how",
		"into", "isn't", "it's", "its", "itself", "just", "let's", "like", "more", "most",
		"much", "must", "mustn't", "myself", "new", "nor", "not", "now", "off", "once",
		"one", "only", "other", "our", "ours", "ourselves", "out", "over", "own", "said",
		"same", "says", "she", "should", "shouldn't", "some", "such", "than", "that",
		"that's", "the", "their", "theirs", "them", "themselves", "then", "there", "these",
		"they", "this", "those", "through", "too", "two", "under", "until", "very", "was",
		"wasn't", "were", "weren't", "what", "when", "where", "which", "while", "who",
		"whom", "why", "will", "with", "won't", "would", "year", "years", "yet", "you",
		"your", "yours", "yourself", "yourselves",
	),
	"de": set(
		"aber", "alle", "als", "also", "auch", "auf", "aus", "bei", "bin", "bis", "das",
		"dass", "dem", "den", "der", "des", "die", "doch", "dort", "durch", "ein", "eine",
		"einem", "einen", "einer", "eines", "für", "hat", "hatte", "ich", "ihr", "ihre",
		"ist", "mit", "nach", "nicht", "noch", "nur", "oder", "sich", "sie", "sind", "über",
		"und", "uns", "unter", "vom", "von", "vor", "war", "waren", "was", "wenn", "wie",
		"wir", "wird", "wurde", "zum", "zur",
	),
	"es": set(
		"algo", "como", "con", "contra", "cual", "cuando", "del", "desde", "donde", "durante",
		"ella", "ellos", "entre", "era", "esa", "ese", "esta", "este", "esto", "fue", "han",
		"hay", "las", "los", "más", "muy", "nos", "para", "pero", "por", "porque", "que",
		"quien", "ser", "sin", "sobre", "son", "también", "tiene", "todo", "una", "uno", "unos",
	),
	"fr": set(
		"avec", "aux", "avait", "cette", "ces", "comme", "dans", "des", "elle", "est", "été",
		"ils", "leur", "les", "lui", "mais", "même", "nous", "par", "pas", "plus", "pour",
		"qui", "que", "sans", "ses", "son", "sont", "sur", "une", "vous",
	),
}

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
