// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package media

import (
	"fmt"
)

// QueryKind is the kind of request a session issues against a catalog.
type QueryKind int

const (
	QueryNone QueryKind = iota
	QueryBrowse
	QueryList
	QueryLink
	QuerySearch
)

func (k QueryKind) String() string {
	switch k {
	case QueryNone:
		return "none"
	case QueryBrowse:
		return "browse"
	case QueryList:
		return "list"
	case QueryLink:
		return "link"
	case QuerySearch:
		return "search"
	}
	return fmt.Sprintf("QueryKind(%d)", int(k))
}

// Query describes the current request of a session.
type Query struct {
	Kind QueryKind

	// Datum is the container browsed into; nil browses the root.
	Datum *Datum

	// Tag is the tag listed or linked on.
	Tag *Tag

	// Value is the linked value or the search text.
	Value string
}

// BrowseQuery returns a query browsing into the datum.
func BrowseQuery(datum *Datum) Query {
	return Query{Kind: QueryBrowse, Datum: datum}
}

// ListQuery returns a query listing the distinct values of the tag.
func ListQuery(tag *Tag) Query {
	return Query{Kind: QueryList, Tag: tag}
}

// LinkQuery returns a query for the items whose tag has the value.
func LinkQuery(tag *Tag, value string) Query {
	return Query{Kind: QueryLink, Tag: tag, Value: value}
}

// SearchQuery returns a query for the items matching the text.
func SearchQuery(text string) Query {
	return Query{Kind: QuerySearch, Value: text}
}

func (q Query) String() string {
	switch q.Kind {
	case QueryBrowse:
		if q.Datum == nil {
			return "browse(root)"
		}
		return fmt.Sprintf("browse(%d tags)", q.Datum.Len())
	case QueryList:
		return fmt.Sprintf("list(%s)", q.Tag)
	case QueryLink:
		return fmt.Sprintf("link(%s=%q)", q.Tag, q.Value)
	case QuerySearch:
		return fmt.Sprintf("search(%q)", q.Value)
	}
	return q.Kind.String()
}
