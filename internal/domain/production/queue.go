package production

// MaxQueueDepthPerPlanet caps unfinished builds per planet.
const MaxQueueDepthPerPlanet = 3

// QueueItem is one queued build on a planet's yard.
type QueueItem struct {
	ID         int
	PlanetID   int
	DesignID   int
	PlayerID   int
	QueuedTurn int
	Finished   bool
}

// Finish marks the build as delivered.
func (q *QueueItem) Finish() {
	q.Finished = true
}

// NewQueueItem queues a design on a planet.
func NewQueueItem(playerID, planetID, designID, turn int) *QueueItem {
	return &QueueItem{
		PlayerID:   playerID,
		PlanetID:   planetID,
		DesignID:   designID,
		QueuedTurn: turn,
	}
}
