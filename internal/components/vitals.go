package components

// Vitals tracks current and maximum HP, mirroring the teacher's paired
// HP/MaxHP fields on world.Follower/world.NPC/world.Pet. It is added and
// read by pointer so passive regeneration can mutate HP in place; a caller
// that does so must follow up with Entity.NotifyModified to fire the
// Modified event a full Replace would otherwise fire automatically.
type Vitals struct {
	HP, MaxHP int32
}

func (*Vitals) Modifiable() {}
