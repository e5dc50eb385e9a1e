package nlp

// Spanish function words ignored when building classifier features.
var spanishStopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "acá", "ahí", "al", "algo", "algún", "alguna", "algunas", "alguno", "algunos",
		"allá", "allí", "ante", "antes", "aquel", "aquella", "aquellas", "aquello", "aquellos",
		"aquí", "así", "aun", "aún", "bajo", "bien", "cada", "casi", "cierta", "ciertas",
		"cierto", "ciertos", "como", "cómo", "con", "contra", "cual", "cuál", "cuales", "cuáles",
		"cualquier", "cuando", "cuándo", "cuanto", "cuánto", "cuanta", "cuánta", "cuantos",
		"cuántos", "de", "del", "desde", "donde", "dónde", "dos", "durante", "e", "el", "él",
		"ella", "ellas", "ello", "ellos", "en", "entre", "era", "eran", "eres", "es", "esa",
		"esas", "ese", "eso", "esos", "esta", "está", "estaba", "estado", "estamos", "están",
		"estar", "estas", "estás", "este", "esto", "estos", "estoy", "fue", "fueron", "ha",
		"había", "habían", "han", "has", "hasta", "hay", "he", "hemos", "la", "las", "le",
		"les", "lo", "los", "más", "me", "mi", "mí", "mis", "mucho", "muchos", "muy", "nada",
		"ni", "no", "nos", "nosotros", "nuestra", "nuestro", "o", "os", "otra", "otras", "otro",
		"otros", "para", "pero", "poco", "por", "porque", "puede", "pueden", "puedo", "que",
		"qué", "quien", "quién", "quienes", "se", "sea", "ser", "si", "sí", "sido", "sin",
		"sobre", "sois", "somos", "son", "soy", "su", "sus", "también", "tan", "tanto", "te",
		"tengo", "ti", "tiene", "tienen", "todo", "todos", "tu", "tú", "tus", "u", "un", "una",
		"unas", "uno", "unos", "usted", "ustedes", "va", "vamos", "van", "vosotros", "y", "ya",
		"yo",
	} {
		spanishStopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether the lowercased word is a Spanish stop-word.
func IsStopWord(word string) bool {
	_, ok := spanishStopWords[word]
	return ok
}
