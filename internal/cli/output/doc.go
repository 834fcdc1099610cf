// Package output renders command results as a table, JSON or YAML.
//
// Tables are built from *Table values directly, from types implementing
// Tabler, or by reflection over structs, maps and slices. Nested structs
// are flattened into dotted field names. JSON and YAML output go through
// the values' JSON encoding so both formats show the same field names.
package output
