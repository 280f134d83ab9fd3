package propset

var pidNames = map[uint32]string{
	PIDDictionary:  "Dictionary",
	PIDCodepage:    "Codepage",
	PIDTitle:       "Title",
	PIDSubject:     "Subject",
	PIDAuthor:      "Author",
	PIDKeywords:    "Keywords",
	PIDComments:    "Comments",
	PIDTemplate:    "Template",
	PIDLastAuthor:  "LastAuthor",
	PIDRevNumber:   "RevisionNumber",
	PIDEditTime:    "TotalEditTime",
	PIDLastPrinted: "LastPrinted",
	PIDCreateDTM:   "CreateTime",
	PIDLastSaveDTM: "LastSaveTime",
	PIDPageCount:   "PageCount",
	PIDWordCount:   "WordCount",
	PIDCharCount:   "CharCount",
	PIDThumbnail:   "Thumbnail",
	PIDAppName:     "ApplicationName",
	PIDSecurity:    "Security",
}

// PIDName returns the well-known display name for id, or "" if id isn't
// one of the SummaryInformation/DocumentSummaryInformation properties
// this package names, per spec.md §4.8/GLOSSARY.
func PIDName(id uint32) string {
	return pidNames[id]
}
