// Package sqlspec builds parameterized SQL statements from declarative
// statement specifications. A Spec describes one storage relation together
// with filter attributes (ANDed predicates), value attributes (insert/update
// targets) and joined relations. Specs are immutable values: Where, Set,
// Join and OrderBy return copies, so a spec can be held and reused across
// statements.
package sqlspec

import (
	"errors"
	"fmt"
	"strings"
)

// Table identifies one storage relation and its key attribute. The key is
// used on both sides of a join predicate, so related tables carry the child
// table's key name as their foreign-key column.
type Table struct {
	Name string
	Key  string
}

// JoinMode selects how a related table is attached to a joined select.
type JoinMode int

const (
	// JoinFull requires the related row (INNER JOIN).
	JoinFull JoinMode = iota + 1
	// JoinOptional tolerates a missing related row (LEFT JOIN).
	JoinOptional
)

// ErrInvalidJoinMode reports a relation declared with an unknown join mode.
var ErrInvalidJoinMode = errors.New("sqlspec: invalid join mode")

// Field pairs an attribute name with its typed value.
type Field struct {
	Name  string
	Value any
}

// Relation attaches a related table to a joined select.
type Relation struct {
	Table Table
	Mode  JoinMode
}

// Spec is an immutable statement specification for a single relation.
type Spec struct {
	table     Table
	filters   []Field
	values    []Field
	relations []Relation
	ordering  []string
}

// Statement carries generated SQL text and its bound arguments.
type Statement struct {
	SQL  string
	Args []any
}

// For starts a spec for the given table.
func For(table Table) Spec {
	return Spec{table: table}
}

// Where appends an ANDed equality predicate. A nil value matches SQL NULL.
func (s Spec) Where(name string, value any) Spec {
	s.filters = appendField(s.filters, Field{Name: name, Value: value})
	return s
}

// Set appends an attribute to write on insert or update. A nil value writes
// SQL NULL.
func (s Spec) Set(name string, value any) Spec {
	s.values = appendField(s.values, Field{Name: name, Value: value})
	return s
}

// OrderBy appends an ascending sort attribute to selects.
func (s Spec) OrderBy(name string) Spec {
	cols := make([]string, len(s.ordering), len(s.ordering)+1)
	copy(cols, s.ordering)
	s.ordering = append(cols, name)
	return s
}

// Join appends a related table, matched on the related table's key column.
func (s Spec) Join(table Table, mode JoinMode) Spec {
	rels := make([]Relation, len(s.relations), len(s.relations)+1)
	copy(rels, s.relations)
	s.relations = append(rels, Relation{Table: table, Mode: mode})
	return s
}

// Insert builds an INSERT statement from the spec's value attributes.
func (s Spec) Insert() (Statement, error) {
	if len(s.values) == 0 {
		return Statement{}, fmt.Errorf("sqlspec: insert into %s has no values", s.table.Name)
	}

	names := make([]string, 0, len(s.values))
	placeholders := make([]string, 0, len(s.values))
	args := make([]any, 0, len(s.values))
	for _, field := range s.values {
		arg, err := encodeValue(field)
		if err != nil {
			return Statement{}, err
		}
		names = append(names, field.Name)
		placeholders = append(placeholders, "?")
		args = append(args, arg)
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.table.Name, strings.Join(names, ", "), strings.Join(placeholders, ", "))
	return Statement{SQL: sql, Args: args}, nil
}

// Select builds a SELECT over the base table. With no filters it selects all
// rows.
func (s Spec) Select() (Statement, error) {
	where, args, err := buildWhere(s.filters, "")
	if err != nil {
		return Statement{}, err
	}
	return Statement{SQL: "SELECT * FROM " + s.table.Name + where + buildOrder(s.ordering, ""), Args: args}, nil
}

// SelectJoined builds a SELECT including the declared relations, in
// declaration order. Filters are qualified against the base table. With no
// relations the statement degenerates to the plain Select shape.
func (s Spec) SelectJoined() (Statement, error) {
	if len(s.relations) == 0 {
		return s.Select()
	}

	columns := []string{"TBL.*"}
	joins := make([]string, 0, len(s.relations))
	for i, rel := range s.relations {
		alias := fmt.Sprintf("AX%d", i)
		columns = append(columns, alias+".*")

		var kind string
		switch rel.Mode {
		case JoinFull:
			kind = "INNER JOIN"
		case JoinOptional:
			kind = "LEFT JOIN"
		default:
			return Statement{}, fmt.Errorf("%w: relation %s", ErrInvalidJoinMode, rel.Table.Name)
		}
		joins = append(joins, fmt.Sprintf("%s %s %s ON TBL.%s = %s.%s",
			kind, rel.Table.Name, alias, rel.Table.Key, alias, rel.Table.Key))
	}

	where, args, err := buildWhere(s.filters, "TBL.")
	if err != nil {
		return Statement{}, err
	}

	sql := fmt.Sprintf("SELECT %s FROM %s TBL %s%s%s",
		strings.Join(columns, ", "), s.table.Name, strings.Join(joins, " "), where,
		buildOrder(s.ordering, "TBL."))
	return Statement{SQL: sql, Args: args}, nil
}

// Update builds an UPDATE from the spec's value attributes, constrained by
// its filters.
func (s Spec) Update() (Statement, error) {
	if len(s.values) == 0 {
		return Statement{}, fmt.Errorf("sqlspec: update of %s has no values", s.table.Name)
	}
	if len(s.filters) == 0 {
		return Statement{}, fmt.Errorf("sqlspec: update of %s has no filters", s.table.Name)
	}

	assignments := make([]string, 0, len(s.values))
	args := make([]any, 0, len(s.values)+len(s.filters))
	for _, field := range s.values {
		arg, err := encodeValue(field)
		if err != nil {
			return Statement{}, err
		}
		assignments = append(assignments, field.Name+" = ?")
		args = append(args, arg)
	}

	where, whereArgs, err := buildWhere(s.filters, "")
	if err != nil {
		return Statement{}, err
	}
	args = append(args, whereArgs...)

	sql := fmt.Sprintf("UPDATE %s SET %s%s", s.table.Name, strings.Join(assignments, ", "), where)
	return Statement{SQL: sql, Args: args}, nil
}

// Delete builds a DELETE constrained by the spec's filters.
func (s Spec) Delete() (Statement, error) {
	if len(s.filters) == 0 {
		return Statement{}, fmt.Errorf("sqlspec: delete from %s has no filters", s.table.Name)
	}
	where, args, err := buildWhere(s.filters, "")
	if err != nil {
		return Statement{}, err
	}
	return Statement{SQL: "DELETE FROM " + s.table.Name + where, Args: args}, nil
}

func buildOrder(ordering []string, qualifier string) string {
	if len(ordering) == 0 {
		return ""
	}
	cols := make([]string, 0, len(ordering))
	for _, name := range ordering {
		cols = append(cols, qualifier+name)
	}
	return " ORDER BY " + strings.Join(cols, ", ")
}

func buildWhere(filters []Field, qualifier string) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}

	predicates := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for _, field := range filters {
		arg, err := encodeValue(field)
		if err != nil {
			return "", nil, err
		}
		if arg == nil {
			predicates = append(predicates, qualifier+field.Name+" IS NULL")
			continue
		}
		predicates = append(predicates, qualifier+field.Name+" = ?")
		args = append(args, arg)
	}
	return " WHERE " + strings.Join(predicates, " AND "), args, nil
}

func appendField(in []Field, extra Field) []Field {
	out := make([]Field, len(in), len(in)+1)
	copy(out, in)
	return append(out, extra)
}
