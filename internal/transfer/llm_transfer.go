package transfer

// Shapes the model is instructed to answer with. Decoding is always
// defensive: a reply that does not parse degrades that platform's content
// to absent instead of failing the request.

type CaptionResult struct {
	Caption string `json:"caption"`
	Hook    string `json:"hook"`
	Cta     string `json:"cta"`
}

type HashtagsResult struct {
	Hashtags []string `json:"hashtags"`
	Notes    string   `json:"notes"`
}

type TitleResult struct {
	Title        string   `json:"title"`
	Alternatives []string `json:"alternatives"`
}

type RewriteResult struct {
	RewrittenText string `json:"rewritten_text"`
	DiffSummary   string `json:"diff_summary"`
}
