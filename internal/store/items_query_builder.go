package store

import (
	"strings"
)

// ItemFilter selects items. Set criteria are combined with AND; zero values are ignored.
type ItemFilter struct {
	ListID   int64
	Status   string
	Priority string
	TagName  string
	Query    string
}

type itemQueryBuilder struct {
	filter ItemFilter
	query  string
	args   []any
	where  []string
}

func buildItemQuery(filter ItemFilter) (string, []any) {
	builder := &itemQueryBuilder{filter: filter}
	builder.buildSelect()
	builder.buildWhere()
	builder.buildOrder()
	return builder.query, builder.args
}

func (b *itemQueryBuilder) buildSelect() {
	b.query = "SELECT " + itemColumns + " FROM todo_items"
}

func (b *itemQueryBuilder) buildWhere() {
	b.appendListID()
	b.appendStatus()
	b.appendPriority()
	b.appendTag()
	b.appendSearch()

	if len(b.where) == 0 {
		return
	}
	b.query += " WHERE " + strings.Join(b.where, " AND ")
}

func (b *itemQueryBuilder) buildOrder() {
	b.query += " ORDER BY created_at DESC, id DESC"
}

func (b *itemQueryBuilder) appendListID() {
	if b.filter.ListID <= 0 {
		return
	}
	b.where = append(b.where, "list_id = ?")
	b.args = append(b.args, b.filter.ListID)
}

func (b *itemQueryBuilder) appendStatus() {
	if b.filter.Status == "" {
		return
	}
	b.where = append(b.where, "status = ?")
	b.args = append(b.args, b.filter.Status)
}

func (b *itemQueryBuilder) appendPriority() {
	if b.filter.Priority == "" {
		return
	}
	b.where = append(b.where, "priority = ?")
	b.args = append(b.args, b.filter.Priority)
}

func (b *itemQueryBuilder) appendTag() {
	if b.filter.TagName == "" {
		return
	}
	b.where = append(b.where, "id IN (SELECT tit.item_id FROM todo_item_tags tit JOIN tags t ON t.id = tit.tag_id WHERE t.name = ?)")
	b.args = append(b.args, b.filter.TagName)
}

// appendSearch matches a case-insensitive substring. Both sides are folded
// with foldFunc so non-ASCII letters compare without case.
func (b *itemQueryBuilder) appendSearch() {
	if b.filter.Query == "" {
		return
	}
	pattern := "%" + escapeLike(strings.ToLower(b.filter.Query)) + "%"
	var clauses []string
	for _, column := range []string{"title", "description", "full_description"} {
		clauses = append(clauses, foldFunc+"("+column+`) LIKE ? ESCAPE '\'`)
		b.args = append(b.args, pattern)
	}
	b.where = append(b.where, "("+strings.Join(clauses, " OR ")+")")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
