package dataset

// Row is one normalized asset record.
type Row struct {
	values [ColumnCount]string

	PriceUSD         Float
	PercentChange1h  Float
	PercentChange24h Float
	PercentChange7d  Float
}

// NewRow builds a normalized row from the 16 positional raw values.
func NewRow(values [ColumnCount]string) Row {
	return Row{
		values:           values,
		PriceUSD:         ParseFloat(values[ColPriceUSD]),
		PercentChange1h:  ParseFloat(values[ColPercentChange1h]),
		PercentChange24h: ParseFloat(values[ColPercentChange24h]),
		PercentChange7d:  ParseFloat(values[ColPercentChange7d]),
	}
}

// Name is the display name used by asset lookup.
func (r Row) Name() string { return r.values[ColName] }

// Symbol is the ticker symbol.
func (r Row) Symbol() string { return r.values[ColSymbol] }

// ID is the upstream asset id.
func (r Row) ID() string { return r.values[ColID] }

// Get returns the raw text of a named column.
func (r Row) Get(column string) (string, bool) {
	idx, ok := ColumnIndex(column)
	if !ok {
		return "", false
	}
	return r.values[idx], true
}

// Values returns the raw text of all columns in schema order.
func (r Row) Values() [ColumnCount]string {
	return r.values
}

// Numeric returns the coerced value of a numeric column.
func (r Row) Numeric(column string) (Float, bool) {
	switch column {
	case Columns[ColPriceUSD]:
		return r.PriceUSD, true
	case Columns[ColPercentChange1h]:
		return r.PercentChange1h, true
	case Columns[ColPercentChange24h]:
		return r.PercentChange24h, true
	case Columns[ColPercentChange7d]:
		return r.PercentChange7d, true
	}
	return Float{}, false
}

// Changes returns the percent changes ordered 1h, 24h, 7d.
func (r Row) Changes() [3]Float {
	return [3]Float{r.PercentChange1h, r.PercentChange24h, r.PercentChange7d}
}

// Table is an ordered, read-only sequence of normalized rows.
type Table struct {
	rows []Row
}

// NewTable copies rows into a table, preserving their order.
func NewTable(rows []Row) Table {
	cp := make([]Row, len(rows))
	copy(cp, rows)
	return Table{rows: cp}
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.rows) }

// Empty reports whether the table holds no rows.
func (t Table) Empty() bool { return len(t.rows) == 0 }

// Row returns the row at position i.
func (t Table) Row(i int) Row { return t.rows[i] }

// Rows returns a copy of all rows in table order.
func (t Table) Rows() []Row {
	cp := make([]Row, len(t.rows))
	copy(cp, t.rows)
	return cp
}

// Names lists asset names in table order.
func (t Table) Names() []string {
	names := make([]string, len(t.rows))
	for i, r := range t.rows {
		names[i] = r.Name()
	}
	return names
}
