package component

// StageComponent tags an entity as stage content
// Stage entities are written by a stage save and replaced by a stage load
type StageComponent struct{}
