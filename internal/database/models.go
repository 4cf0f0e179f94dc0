package database

// Report is one ingested markdown report.
type Report struct {
	ID        int64
	Date      string
	Slug      string
	Category  string
	Title     string
	Content   string
	WordCount int
	FilePath  string
	FileHash  string
	IndexedAt string
}

// ReportRecord carries everything derived from one file into SaveReport.
type ReportRecord struct {
	Date      string
	Slug      string
	Category  string
	Title     string
	Content   string
	WordCount int
	FilePath  string
	FileHash  string
	Entities  []EntityLink
	Sources   []SourceRef
}

// EntityLink attaches one gazetteer entity to a report being indexed.
type EntityLink struct {
	Name     string
	Type     string
	Lat      float64
	Lng      float64
	Mentions int
	Context  string
}

// SourceRef is one citation attached to a report being indexed.
type SourceRef struct {
	URL   string
	Name  string
	Trust string
	Title string
}

// SearchResult is one ranked full-text hit. Snippet is the report content
// with every matched term wrapped in <mark> tags.
type SearchResult struct {
	ReportID int64  `json:"report_id"`
	Snippet  string `json:"snippet"`
	Date     string `json:"date"`
	Slug     string `json:"slug"`
	Category string `json:"category"`
}

// EntityAppearance is one report mentioning an entity.
type EntityAppearance struct {
	Date         string `json:"date"`
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	MentionCount int    `json:"mention_count"`
	Context      string `json:"context"`
}

// RelatedReport is a report connected to another through a shared entity.
type RelatedReport struct {
	Date         string  `json:"date"`
	Slug         string  `json:"slug"`
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	SharedEntity string  `json:"shared_entity"`
	Strength     float64 `json:"strength"`
}

// EntityCount ranks an entity by summed mention count.
type EntityCount struct {
	Name          string   `json:"name"`
	Type          *string  `json:"type"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	TotalMentions int      `json:"total_mentions"`
}

// SourceStat aggregates citations for one source name and trust rating.
type SourceStat struct {
	SourceName  string `json:"source_name"`
	TrustRating string `json:"trust_rating"`
	Count       int    `json:"count"`
}

// ReportSummary is a report row without its content, for date listings.
type ReportSummary struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Slug      string `json:"slug"`
	Category  string `json:"category"`
	Title     string `json:"title"`
	WordCount int    `json:"word_count"`
}

// Stats contains aggregate database statistics.
type Stats struct {
	Reports        int `json:"reports"`
	Entities       int `json:"entities"`
	ReportEntities int `json:"report_entities"`
	Sources        int `json:"sources"`
	Connections    int `json:"connections"`
	Dates          int `json:"dates"`
}

// IngestRun records the outcome of one directory ingestion pass.
type IngestRun struct {
	ID         int64  `json:"id"`
	RunID      string `json:"run_id"`
	StartedAt  string `json:"started_at"`
	DurationMS int64  `json:"duration_ms"`
	Scanned    int    `json:"scanned"`
	Created    int    `json:"created"`
	Updated    int    `json:"updated"`
	Unchanged  int    `json:"unchanged"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
	Status     string `json:"status"`
}
