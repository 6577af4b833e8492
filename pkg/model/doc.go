// Package model implements the logical model layer for OLAP metadata: a
// typed object graph of models, cubes, dimensions, hierarchies, levels,
// attributes, measures and aggregates.
//
// The package is a container with validation, not an engine: entities are
// built once from metadata, optionally localized into per-locale copies, and
// then queried read-only by query browsers and backends. Ownership runs
// strictly Model -> Cube/Dimension -> Hierarchy -> Level -> Attribute;
// attributes and levels keep non-owning back references to their dimension.
// Dimensions are shared by reference between cubes and the model and are
// treated as immutable once registered.
package model
