package schema

import "fmt"

// Check verifies that a schema is consistent: every referenced column is
// declared, foreign keys point to declared unique columns of other tables
// and enums have values.
func Check(s Schema) error {
	for _, name := range s.Names() {
		if err := checkTable(s, name); err != nil {
			return err
		}
	}
	return nil
}

func checkTable(s Schema, name string) error {
	t := s[name]
	if t == nil {
		return InconsistentError(name, "table has no declaration")
	}
	seen := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		if _, ok := seen[c.Name]; ok {
			return InconsistentError(name, fmt.Sprintf("column %q is declared twice", c.Name))
		}
		seen[c.Name] = struct{}{}
	}

	declared := func(group string, cols []string) error {
		for _, c := range cols {
			if !t.HasColumn(c) {
				return InconsistentError(name,
					fmt.Sprintf("%s column %q is not declared", group, c))
			}
		}
		return nil
	}
	if err := declared("unique", t.Uniques); err != nil {
		return err
	}
	if err := declared("non-nullable", t.NonNullable); err != nil {
		return err
	}
	if err := declared("composite key", t.CompositeKey); err != nil {
		return err
	}
	if err := declared("project date", t.ProjectDates); err != nil {
		return err
	}
	if len(t.ProjectDates) != 0 && len(t.ProjectDates) != 2 {
		return InconsistentError(name, "project dates need a start and a completion column")
	}

	for _, e := range t.Enums {
		if !t.HasColumn(e.Column) {
			return InconsistentError(name, fmt.Sprintf("enum column %q is not declared", e.Column))
		}
		if len(e.Values) == 0 {
			return InconsistentError(name, fmt.Sprintf("enum column %q has no values", e.Column))
		}
	}

	for _, fk := range t.ForeignKeys {
		if !t.HasColumn(fk.Column) {
			return InconsistentError(name,
				fmt.Sprintf("foreign key column %q is not declared", fk.Column))
		}
		if fk.ParentTable == name {
			return InconsistentError(name,
				fmt.Sprintf("foreign key %q references its own table", fk.Column))
		}
		parent, ok := s[fk.ParentTable]
		if !ok {
			return InconsistentError(name,
				fmt.Sprintf("foreign key %q references unknown table %q", fk.Column, fk.ParentTable))
		}
		if !parent.HasColumn(fk.ParentPK) {
			return InconsistentError(name,
				fmt.Sprintf("foreign key %q references unknown column %q of %q",
					fk.Column, fk.ParentPK, fk.ParentTable))
		}
		if !parent.IsUnique(fk.ParentPK) {
			return InconsistentError(name,
				fmt.Sprintf("foreign key %q references %q of %q which is not unique",
					fk.Column, fk.ParentPK, fk.ParentTable))
		}
	}
	return nil
}
