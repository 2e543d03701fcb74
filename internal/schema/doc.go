// Package schema compiles JSON Schema documents, registers them per
// configuration type and validates merged configuration against them.
//
// A schema governs either a whole document or the value at a dotted
// sub-path of it. Schemas are discovered from schema provider packages:
//
//	<package>/Resources/Private/Schema/Settings.schema.yaml
//	<package>/Resources/Private/Schema/Settings/TYPO3.Flow.persistence.schema.yaml
//
// Only packages named as providers contribute schemas to a registry.
package schema
