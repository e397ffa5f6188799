package classify

// Keyword is a lowercase phrase and the weight it adds when found.
type Keyword struct {
	Phrase string
	Weight int
}

// Category is one thematic area of the taxonomy.
type Category struct {
	Name     string
	Keywords []Keyword
}

// DefaultCategory is returned when no category reaches the confidence floor.
const DefaultCategory = "Gender equality and women’s empowerment"

// catalogue is read-only after package initialisation. Declaration order is
// the tie-break order.
var catalogue = []Category{
	{DefaultCategory, []Keyword{
		{"gender equality", 3}, {"women's empowerment", 3}, {"empowerment", 2}, {"empower", 1},
		{"women", 1}, {"girls", 1}, {"leadership", 1}, {"equity", 1}, {"inclusion", 1}, {"rights", 1},
	}},
	{"Gender analysis, gender mainstreaming and the project cycle", []Keyword{
		{"gender analysis", 3}, {"gender mainstreaming", 3}, {"mainstreaming", 2}, {"project cycle", 3},
		{"logframe", 2}, {"logical framework", 2}, {"design phase", 1}, {"implementation phase", 1},
		{"monitoring and evaluation", 2}, {"m&e", 2},
	}},
	{"Gender-responsive policy making and budgeting", []Keyword{
		{"gender-responsive budget", 3}, {"policy-making", 2}, {"policy making", 2}, {"budgeting", 2},
		{"policy", 1}, {"policies", 1}, {"budget", 1}, {"grb", 2}, {"governance", 1},
		{"regulation", 1}, {"legislation", 2},
	}},
	{"Gender statistics and sex-disaggregated data", []Keyword{
		{"sex-disaggregated", 3}, {"sex disaggregated", 3}, {"gender statistics", 3},
		{"disaggregated data", 3}, {"gender data", 3}, {"data collection", 2}, {"indicator", 1},
		{"survey", 1}, {"census", 2},
	}},
	{"Gender in fisheries and aquaculture", []Keyword{
		{"fisheries", 3}, {"fishery", 3}, {"aquaculture", 3}, {"fish value chain", 3},
		{"fisher", 1}, {"fishing", 2},
	}},
	{"Gender in forestry and agroforestry", []Keyword{
		{"agroforestry", 3}, {"forestry", 3}, {"non-timber forest", 3}, {"ntfp", 3},
		{"woodlot", 2}, {"forest", 1},
	}},
	{"Gender and livestock", []Keyword{
		{"livestock", 3}, {"pastoralist", 3}, {"pastoral", 2}, {"animal health", 2},
		{"small ruminant", 2}, {"herd", 1}, {"cattle", 2}, {"goat", 1}, {"sheep", 1},
	}},
	{"Gender and plant production and protection", []Keyword{
		{"plant production", 3}, {"plant protection", 3}, {"integrated pest", 3}, {"plant health", 2},
		{"crop production", 2}, {"crop", 1}, {"ipm", 2}, {"seed", 1}, {"agronomy", 2},
	}},
	{"Gender and innovative and labour-saving technologies", []Keyword{
		{"labour-saving", 3}, {"labor-saving", 3}, {"mechanization", 2}, {"mechanisation", 2},
		{"innovation", 1}, {"innovative", 1}, {"technology", 1}, {"technologies", 1},
		{"digital", 1}, {"tools", 1}, {"equipment", 1},
	}},
	{"Gender and land and water", []Keyword{
		{"land tenure", 3}, {"land rights", 3}, {"land governance", 3}, {"water management", 2},
		{"irrigation", 2}, {"watershed", 2}, {"land", 1}, {"water", 1},
	}},
	{"Gender and food security and nutrition", []Keyword{
		{"food security", 3}, {"malnutrition", 3}, {"nutrition", 2}, {"household food", 2},
		{"nutritious", 1}, {"diet", 1}, {"food systems", 1},
	}},
	{"Gender and inclusive food systems and value chains", []Keyword{
		{"value chain", 2}, {"inclusive business", 3}, {"market access", 2}, {"agrifood", 1},
		{"food system", 1}, {"processing", 1}, {"marketing", 1}, {"inclusive", 1},
	}},
	{"Gender and climate change, agroecology and biodiversity", []Keyword{
		{"climate change", 3}, {"agroecology", 3}, {"biodiversity", 3}, {"nature-based", 2},
		{"climate", 1}, {"mitigation", 1}, {"adaptation", 1}, {"emissions", 1}, {"ecosystem", 1},
	}},
	{"Gender and emergencies and resilience building", []Keyword{
		{"humanitarian", 3}, {"emergency", 2}, {"resilience", 2}, {"disaster", 2}, {"risk management", 2},
		{"crisis", 1}, {"conflict", 1}, {"shock", 1}, {"drm", 2},
	}},
	{"Gender-based violence and protection from sexual exploitation and abuse", []Keyword{
		{"gender-based violence", 4}, {"protection from sexual exploitation and abuse", 4},
		{"gbv", 3}, {"psea", 3}, {"harassment", 2}, {"safeguarding", 2}, {"violence", 1},
	}},
	{"Gender and rural financial services", []Keyword{
		{"financial services", 3}, {"microfinance", 3}, {"credit", 2}, {"loans", 2}, {"savings", 2},
		{"remittances", 2}, {"finance", 1},
	}},
	{"Gender and decent rural employment and child labour", []Keyword{
		{"child labour", 3}, {"child labor", 3}, {"decent work", 3}, {"decent employment", 3},
		{"rural employment", 3}, {"youth employment", 2}, {"occupational safety", 2}, {"oshea", 2},
	}},
	{"Gender and investment in sustainable agrifood systems", []Keyword{
		{"sustainable agrifood", 3}, {"public investment", 3}, {"private investment", 3},
		{"investment", 2}, {"invest", 1}, {"financing", 1}, {"infrastructure", 1}, {"capital", 1},
	}},
	{"Gender and rural advisory services", []Keyword{
		{"rural advisory", 3}, {"advisory services", 3}, {"farmer field school", 3}, {"extension", 2},
		{"capacity development", 2}, {"ffs", 2}, {"training", 1},
	}},
	{"Gender-sensitive social protection", []Keyword{
		{"social protection", 3}, {"cash transfer", 3}, {"safety net", 3}, {"social assistance", 3},
		{"public works", 2}, {"insurance", 1},
	}},
}

// Catalogue returns a copy of the category table in declaration order.
func Catalogue() []Category {
	out := make([]Category, len(catalogue))
	for i, c := range catalogue {
		out[i] = Category{Name: c.Name, Keywords: append([]Keyword(nil), c.Keywords...)}
	}
	return out
}

// Names lists the category names in declaration order.
func Names() []string {
	names := make([]string, len(catalogue))
	for i, c := range catalogue {
		names[i] = c.Name
	}
	return names
}
