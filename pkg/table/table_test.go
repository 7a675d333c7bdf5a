package table

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestTable_Write(t *testing.T) {
	tbl := New("id", "name")
	tbl.AddRow(1, "private-vlan")
	tbl.AddRow(12345, "pub")

	var buf bytes.Buffer
	if err := tbl.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "" +
		"id    name         \n" +
		"----- ------------ \n" +
		"1     private-vlan \n" +
		"12345 pub          \n"
	if buf.String() != want {
		t.Errorf("Write() output mismatch\n got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestTable_Write_HeaderWiderThanRows(t *testing.T) {
	tbl := New("interfaces")
	tbl.AddRow("a")

	var buf bytes.Buffer
	if err := tbl.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	for _, line := range lines {
		if len(line) != len("interfaces")+1 {
			t.Errorf("line %q has width %d, want %d", line, len(line), len("interfaces")+1)
		}
	}
}

func TestTable_Write_Empty(t *testing.T) {
	tbl := New("id", "vlan", "name")

	var buf bytes.Buffer
	if err := tbl.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "id vlan name \n-- ---- ---- \n"
	if buf.String() != want {
		t.Errorf("Write() = %q, want %q", buf.String(), want)
	}
}

func TestTable_Widths_WideRunes(t *testing.T) {
	tbl := New("name")
	tbl.AddRow("日本")

	widths := tbl.Widths()
	if widths[0] != 4 {
		t.Errorf("Widths()[0] = %d, want 4", widths[0])
	}
}

func TestTable_AddRow_Normalizes(t *testing.T) {
	tbl := New("a", "b")
	tbl.AddRow(1)
	tbl.AddRow(1, 2, 3)

	for i, row := range tbl.Rows {
		if len(row) != 2 {
			t.Errorf("row %d has %d cells, want 2", i, len(row))
		}
	}
	if tbl.Rows[0][1] != nil {
		t.Errorf("missing cell = %v, want nil", tbl.Rows[0][1])
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
}

func TestTable_WriteJSON(t *testing.T) {
	tbl := New("id", "vlan", "name")
	tbl.AddRow(10, 1101, "prod")
	tbl.AddRow(11, 1102, "")

	var buf bytes.Buffer
	if err := tbl.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	want := `[{"id":10,"vlan":1101,"name":"prod"},{"id":11,"vlan":1102,"name":""}]` + "\n"
	if buf.String() != want {
		t.Errorf("WriteJSON() = %q, want %q", buf.String(), want)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, obj := range decoded {
		if len(obj) != len(tbl.Columns) {
			t.Errorf("object %v has %d keys, want %d", obj, len(obj), len(tbl.Columns))
		}
		for _, col := range tbl.Columns {
			if _, ok := obj[col]; !ok {
				t.Errorf("object %v missing key %q", obj, col)
			}
		}
	}
}

func TestTable_WriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := New("id").WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("WriteJSON() = %q, want %q", buf.String(), "[]\n")
	}
}
