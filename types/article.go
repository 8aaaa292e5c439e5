package types

// ArticleContent is the output of the article synthesis capability.
type ArticleContent struct {
	Title           string   `json:"title"`
	SEOTitle        string   `json:"seo_title"`
	MetaDescription string   `json:"meta_description"`
	MarkdownBody    string   `json:"markdown_body"`
	TLDR            string   `json:"tldr"`
	Keywords        []string `json:"keywords"`
}
