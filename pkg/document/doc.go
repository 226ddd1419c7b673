// Package document exposes the public contracts at the boundary between the
// template engine and the structured documents it describes: sources and
// loaders for raw document bytes, and the model/visitor pair used to turn a
// parsed document into template bindings. Implementations live under
// internal/spl to keep the XML dependency hidden from consumers.
package document
