package falling

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/arupa/internal/textnorm"
)

// emptyWord replaces words that normalize to nothing.
const emptyWord = "tux"

// Status is the game lifecycle state.
type Status int

// Game states. Ended is terminal until Reset.
const (
	Running Status = iota
	Paused
	Ended
)

func (s Status) String() string {
	switch s {
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	default:
		return "running"
	}
}

// Phase tracks a group from spawn to removal.
type Phase int

// Group phases. Queued groups are frozen in place until the collector
// reaches them.
const (
	Falling Phase = iota
	Queued
	Consumed
)

// Letter is one falling character.
type Letter struct {
	ID      int
	GroupID int
	Char    rune
	X       float64
	Y       float64
}

// Group is the set of letters spelling one word.
type Group struct {
	ID        int
	Word      string
	Letters   []Letter
	Speed     float64
	SpawnedAt time.Duration
	Phase     Phase
}

// MaxY returns the y of the lowest letter.
func (g Group) MaxY() float64 {
	y := math.Inf(-1)
	for _, l := range g.Letters {
		y = math.Max(y, l.Y)
	}
	return y
}

// CenterX returns the mean x of the letters.
func (g Group) CenterX() float64 {
	if len(g.Letters) == 0 {
		return 0
	}
	sum := 0.0
	for _, l := range g.Letters {
		sum += l.X
	}
	return sum / float64(len(g.Letters))
}

// Text concatenates the letters ordered left to right.
func (g Group) Text() string {
	var b strings.Builder
	for _, l := range g.sortedLetters() {
		b.WriteRune(l.Char)
	}
	return b.String()
}

func (g Group) sortedLetters() []Letter {
	letters := append([]Letter(nil), g.Letters...)
	sort.SliceStable(letters, func(i, j int) bool { return letters[i].X < letters[j].X })
	return letters
}

func (g Group) clone() Group {
	g.Letters = append([]Letter(nil), g.Letters...)
	return g
}

// MatchResult reports the outcome of EvaluateInput.
type MatchResult struct {
	Matched bool
	GroupID int
	Word    string
}

// Game owns the whole board state. It is not safe for concurrent use; the
// driving loop serializes ticks and input.
type Game struct {
	cfg  Config
	rnd  Rand
	deck *Deck

	groups     []*Group
	queue      []int
	nextGroup  int
	nextLetter int

	collectorX float64
	targetX    float64
	moving     bool

	lives  int
	score  int
	status Status

	clock     time.Duration
	nextSpawn time.Duration
}

// New starts a running game drawing words from deck.
func New(cfg Config, deck *Deck, rnd Rand) *Game {
	g := &Game{cfg: cfg.normalized(), rnd: rnd, deck: deck}
	if g.deck == nil {
		g.deck = NewDeck(nil, rnd)
	}
	g.Reset()
	return g
}

// Reset clears the board and restores lives and score.
func (g *Game) Reset() {
	g.groups = nil
	g.queue = nil
	g.nextGroup = 1
	g.nextLetter = 1
	g.collectorX = g.cfg.Width / 2
	g.targetX = 0
	g.moving = false
	g.lives = g.cfg.Lives
	g.score = 0
	g.status = Running
	g.clock = 0
	g.nextSpawn = SpawnDelay(0)
}

// Config returns the effective settings.
func (g *Game) Config() Config {
	return g.cfg
}

// Resize changes the play area and recenters the collector.
func (g *Game) Resize(width, height float64) {
	if width > 0 {
		g.cfg.Width = width
	}
	if height > 0 {
		g.cfg.Height = height
	}
	g.collectorX = g.cfg.Width / 2
}

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.lives }

// Score returns the number of consumed groups.
func (g *Game) Score() int { return g.score }

// Status returns the lifecycle state.
func (g *Game) Status() Status { return g.status }

// Elapsed returns the virtual time spent running.
func (g *Game) Elapsed() time.Duration { return g.clock }

// Pause halts ticking without touching the board.
func (g *Game) Pause() {
	if g.status == Running {
		g.status = Paused
	}
}

// Resume continues a paused game.
func (g *Game) Resume() {
	if g.status == Paused {
		g.status = Running
	}
}

// Step advances one frame of dt: it spawns due words, moves letters and
// walks the collector. Nothing happens unless the game is running.
func (g *Game) Step(dt time.Duration) {
	if g.status != Running || dt <= 0 {
		return
	}
	g.clock += dt
	for g.status == Running && g.clock >= g.nextSpawn {
		g.SpawnGroup()
		g.nextSpawn += SpawnDelay(g.score)
	}
	g.Tick(dt.Seconds())
	if g.status == Running {
		g.AdvanceCollector()
	}
}

// Tick moves every falling group down by its speed and removes groups that
// passed the boundary, one life each. Queued groups do not move and are
// never lost.
func (g *Game) Tick(elapsed float64) {
	if g.status != Running || elapsed <= 0 {
		return
	}
	for _, grp := range g.groups {
		if grp.Phase != Falling {
			continue
		}
		for i := range grp.Letters {
			grp.Letters[i].Y += grp.Speed * elapsed
		}
	}
	boundary := g.cfg.Boundary()
	kept := g.groups[:0]
	for _, grp := range g.groups {
		if grp.Phase == Falling && grp.MaxY() > boundary && g.status == Running {
			g.loseLife()
			continue
		}
		kept = append(kept, grp)
	}
	g.groups = kept
}

func (g *Game) loseLife() {
	if g.lives > 0 {
		g.lives--
	}
	if g.lives == 0 {
		g.status = Ended
	}
}

// SpawnGroup takes the next deck word and drops it as a new group centred at
// a random x. It reports false once the game has ended.
func (g *Game) SpawnGroup() (Group, bool) {
	if g.status == Ended {
		return Group{}, false
	}
	word := textnorm.Fold(g.deck.Next())
	if word == "" {
		word = emptyWord
	}
	chars := []rune(word)
	totalW := float64(len(chars)) * g.cfg.Spacing
	center := g.spawnCenter(totalW)
	speed := g.cfg.MinSpeed
	if g.rnd != nil {
		speed += g.rnd.Float64() * (g.cfg.MaxSpeed - g.cfg.MinSpeed)
	}

	grp := &Group{ID: g.nextGroup, Word: word, Speed: speed, SpawnedAt: g.clock, Phase: Falling}
	g.nextGroup++
	for i, ch := range chars {
		grp.Letters = append(grp.Letters, Letter{
			ID:      g.nextLetter,
			GroupID: grp.ID,
			Char:    ch,
			X:       center - totalW/2 + float64(i)*g.cfg.Spacing,
			Y:       -g.cfg.SpawnLift - float64(i)*g.cfg.SpawnStagger,
		})
		g.nextLetter++
	}
	g.groups = append(g.groups, grp)
	return grp.clone(), true
}

func (g *Game) spawnCenter(totalW float64) float64 {
	left := math.Floor(g.cfg.Margin + totalW/2)
	right := math.Floor(g.cfg.Width - g.cfg.Margin - totalW/2)
	if left >= right || g.rnd == nil {
		return g.cfg.Width / 2
	}
	return left + float64(g.rnd.Intn(int(right-left)+1))
}

func (g *Game) active() *Group {
	var best *Group
	bestY := math.Inf(-1)
	for _, grp := range g.groups {
		if y := grp.MaxY(); y > bestY {
			best, bestY = grp, y
		}
	}
	return best
}

// ActiveGroup returns the lowest group on the board, the only one input can
// match. A queued group stays active until the collector consumes it.
func (g *Game) ActiveGroup() (Group, bool) {
	grp := g.active()
	if grp == nil {
		return Group{}, false
	}
	return grp.clone(), true
}

// EvaluateInput compares raw against the active group after folding both.
// A match freezes the group and queues it for the collector. Repeating a
// match on a queued group reports it again without queueing it twice.
func (g *Game) EvaluateInput(raw string) MatchResult {
	if g.status != Running {
		return MatchResult{}
	}
	grp := g.active()
	if grp == nil || !textnorm.Equal(raw, grp.Text()) {
		return MatchResult{}
	}
	if !g.isQueued(grp.ID) {
		grp.Phase = Queued
		g.queue = append(g.queue, grp.ID)
	}
	g.startNext()
	return MatchResult{Matched: true, GroupID: grp.ID, Word: grp.Word}
}

func (g *Game) isQueued(id int) bool {
	for _, q := range g.queue {
		if q == id {
			return true
		}
	}
	return false
}

func (g *Game) startNext() {
	if g.moving || len(g.queue) == 0 {
		return
	}
	if grp := g.find(g.queue[0]); grp != nil {
		g.targetX = grp.CenterX()
	} else {
		g.targetX = g.cfg.Width / 2
	}
	g.moving = true
}

func (g *Game) find(id int) *Group {
	for _, grp := range g.groups {
		if grp.ID == id {
			return grp
		}
	}
	return nil
}

// AdvanceCollector moves the collector one bounded step toward the queue
// head. On arrival the group is removed and scored; the id of the consumed
// group is returned with true.
func (g *Game) AdvanceCollector() (int, bool) {
	g.startNext()
	if !g.moving {
		return 0, false
	}
	dx := g.targetX - g.collectorX
	step := math.Min(math.Abs(dx), g.cfg.CollectorStep)
	if dx < 0 {
		step = -step
	}
	g.collectorX += step
	if math.Abs(dx) >= g.cfg.CollectorEpsilon {
		return 0, false
	}

	id := g.queue[0]
	g.queue = g.queue[1:]
	g.moving = false
	if g.remove(id) {
		g.score++
	}
	g.startNext()
	return id, true
}

func (g *Game) remove(id int) bool {
	for i, grp := range g.groups {
		if grp.ID == id {
			grp.Phase = Consumed
			g.groups = append(g.groups[:i], g.groups[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot is a copy of the board for rendering.
type Snapshot struct {
	Width      float64
	Height     float64
	Groups     []Group
	ActiveID   int
	Queue      []int
	CollectorX float64
	Lives      int
	Score      int
	Status     Status
	Elapsed    time.Duration
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Width:      g.cfg.Width,
		Height:     g.cfg.Height,
		Queue:      append([]int(nil), g.queue...),
		CollectorX: g.collectorX,
		Lives:      g.lives,
		Score:      g.score,
		Status:     g.status,
		Elapsed:    g.clock,
	}
	for _, grp := range g.groups {
		snap.Groups = append(snap.Groups, grp.clone())
	}
	if grp := g.active(); grp != nil {
		snap.ActiveID = grp.ID
	}
	return snap
}
