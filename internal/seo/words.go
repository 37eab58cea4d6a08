package seo

// Default word lists used by the title-quality criteria and slug matching.
// All lists are overridable through Thresholds.

var defaultStopWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
	"has", "he", "in", "is", "it", "its", "of", "on", "or", "that",
	"the", "to", "was", "were", "will", "with", "your", "you", "this",
	"these", "those", "how", "what", "why", "when", "where",
}

var defaultPowerWords = []string{
	"ultimate", "essential", "proven", "complete", "definitive",
	"effective", "effortless", "exclusive", "free", "guaranteed",
	"instant", "powerful", "practical", "professional", "quick",
	"secret", "simple", "smart", "best", "top", "easy", "new",
	"actionable", "remarkable", "surprising", "uncovered",
}

var defaultPositiveWords = []string{
	"amazing", "awesome", "boost", "brilliant", "great", "improve",
	"love", "perfect", "success", "win", "winning", "inspiring",
	"beautiful", "happy", "valuable",
}

var defaultNegativeWords = []string{
	"avoid", "mistake", "mistakes", "worst", "never", "stop", "fail",
	"failure", "warning", "danger", "wrong", "broken", "painful",
	"costly", "risky",
}
