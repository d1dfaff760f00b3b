package curation

import (
	"encoding/json"
	"time"
)

// Section carries one structured section's text in both portal languages.
type Section struct {
	EN string `json:"en"`
	TE string `json:"te"`
}

// SectionValue accepts either the bilingual object form or a legacy plain
// string.
//
// Deprecated: the plain-string form exists only for older clients; it is
// duplicated into the Telugu slot with a placeholder suffix.
type SectionValue Section

func (v *SectionValue) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		v.EN = plain
		v.TE = plain + "_te"
		return nil
	}

	var section Section
	if err := json.Unmarshal(data, &section); err != nil {
		return err
	}
	v.EN = section.EN
	v.TE = section.TE
	return nil
}

// FinalArticle holds externally assembled publication data for the
// direct-publish path.
type FinalArticle struct {
	TitleEN     string     `json:"title_en"`
	SummaryEN   string     `json:"summary_en"`
	ContentEN   string     `json:"content_en"`
	TitleTE     string     `json:"title_te"`
	SummaryTE   string     `json:"summary_te"`
	ContentTE   string     `json:"content_te"`
	ImageURL    string     `json:"image_url"`
	SourceURL   string     `json:"source_url"`
	SourceName  string     `json:"source_name"`
	Category    string     `json:"category"`
	PublishedAt *time.Time `json:"published_date"`
	ContentType string     `json:"content_type"`
}
