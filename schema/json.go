// json.go - Schema export as pretty-printed JSON
package schema

import (
	"encoding/json"

	"github.com/tidwall/pretty"
)

type jsonColumn struct {
	ColID  uint32 `json:"col_id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Length int    `json:"length,omitempty"`
	Fixed  bool   `json:"fixed"`
	Offset int    `json:"offset,omitempty"`
	VarIdx *int   `json:"var_index,omitempty"`
}

type jsonKeyColumn struct {
	Name  string `json:"name"`
	Order string `json:"order"`
}

type jsonTable struct {
	ID         uint32          `json:"id"`
	Name       string          `json:"name"`
	Columns    []jsonColumn    `json:"columns"`
	PrimaryKey []jsonKeyColumn `json:"primary_key,omitempty"`
}

// MarshalTableJSON renders a table (and its optional primary key) as
// indented JSON.
func MarshalTableJSON(t *UserTable, pk *PrimaryKey) ([]byte, error) {
	jt := jsonTable{ID: t.ID, Name: t.Name}
	for i, c := range t.Columns {
		jc := jsonColumn{
			ColID: c.ColID,
			Name:  c.Name,
			Type:  c.TypeName(),
			Fixed: c.IsFixed(),
		}
		if c.Length != 0xFFFF {
			jc.Length = int(c.Length)
		}
		if c.IsFixed() {
			jc.Offset = t.FixedOffset(i)
		} else {
			v := t.VarIndex(i)
			jc.VarIdx = &v
		}
		jt.Columns = append(jt.Columns, jc)
	}
	if pk != nil {
		for _, kc := range pk.Cols {
			jt.PrimaryKey = append(jt.PrimaryKey, jsonKeyColumn{
				Name:  kc.Column.Name,
				Order: kc.Order.String(),
			})
		}
	}
	raw, err := json.Marshal(jt)
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(raw), nil
}
