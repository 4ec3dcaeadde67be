package main

// Tag is one (key, value) pair on a Zabbix host. The API models tags as
// an ordered list, not a map: duplicate keys are legal and must survive
// a round trip untouched.
type Tag struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// Host is the slice of a host record this tool reads and writes.
type Host struct {
	HostID string `json:"hostid"`
	Name   string `json:"name,omitempty"`
	Tags   []Tag  `json:"tags"`
}

type HostGroup struct {
	GroupID string `json:"groupid"`
	Name    string `json:"name"`
}

// Row is one CSV record: the desired tag values for every host in the
// named group.
type Row struct {
	GroupName   string
	SiteCountry string
	SiteName    string
	SiteID      string
	ParkID      string
	Technology  string
}

// Managed tag keys, in the order they are appended to each host. Tags
// with these keys belong to this tool and are replaced on every run;
// everything else passes through verbatim.
var managedTagKeys = []string{"COUNTRY", "SITE_NAME", "SITE_ID", "PARKID", "TECHNOLOGY"}

func isManagedKey(key string) bool {
	for _, k := range managedTagKeys {
		if key == k {
			return true
		}
	}
	return false
}

// rowTags builds the five managed tags from a CSV row, in managed-key order.
func rowTags(row Row) []Tag {
	return []Tag{
		{Tag: "COUNTRY", Value: row.SiteCountry},
		{Tag: "SITE_NAME", Value: row.SiteName},
		{Tag: "SITE_ID", Value: row.SiteID},
		{Tag: "PARKID", Value: row.ParkID},
		{Tag: "TECHNOLOGY", Value: row.Technology},
	}
}

// mergeTags computes the full replacement tag list for a host: existing
// non-managed tags first, in their original order, then the managed
// tags. host.update overwrites the whole list, so the merge has to
// happen client-side. Merging twice with the same row is idempotent.
func mergeTags(existing, managed []Tag) []Tag {
	merged := make([]Tag, 0, len(existing)+len(managed))
	for _, t := range existing {
		if !isManagedKey(t.Tag) {
			merged = append(merged, t)
		}
	}
	return append(merged, managed...)
}
