package recommend

import "strings"

// ParseListCell splits a diet or medication cell. The tables store these as
// printed lists, e.g. "['Balanced Diet', 'Low Sugar']". Any leading and
// trailing bracket characters are trimmed, every single quote is removed and
// the remainder is split on ", ". Double quotes and inner whitespace are left
// alone so existing data renders as it always has.
//
// A cell that is empty once brackets and quotes are gone yields no items.
func ParseListCell(cell string) []string {
	body := strings.ReplaceAll(strings.Trim(cell, "[]"), "'", "")
	if body == "" {
		return nil
	}
	return strings.Split(body, ", ")
}

// nonEmpty keeps the cells that carry a value, in column order.
func nonEmpty(cells []string) []string {
	var out []string
	for _, c := range cells {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}
