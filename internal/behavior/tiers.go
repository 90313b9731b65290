package behavior

import (
	"github.com/olivierh59500/inevitable-go/internal/motion"
	"github.com/olivierh59500/inevitable-go/internal/placement"
)

var (
	uniform = placement.Uniform()
	edge    = placement.EdgeBiased()
	corner  = placement.CornerBiased()
	repel   = placement.Strategy{Kind: placement.KindRepel} // From filled by the caller
	hop2    = placement.MultiHop(2)
)

// Explicit tiers. Index is the attempt count.
var fullTiers = [...]Profile{
	0:  move(uniform).over(300, motion.BackOut),                                      // simple relocation
	1:  move(uniform).over(300, motion.BackOut),                                      // simple relocation
	2:  move(edge).over(400, motion.EaseOut),                                         // hug an edge
	3:  move(uniform).scale(0.8).over(300, motion.BackInOut),                         // shrink and dodge
	4:  move(repel).over(250, motion.EaseOut),                                        // flee the pointer
	5:  move(uniform).rotate(-15).over(350, motion.BackOut),                          // tilt
	6:  move(uniform).opacity(0.5).over(300, motion.EaseInOut),                       // fade tease
	7:  move(uniform).blur(2).over(300, motion.EaseOut),                              // blur
	8:  move(hop2).over(200, motion.EaseInOut),                                       // double hop
	9:  move(uniform).scale(1.2).over(400, motion.BackInOut),                         // grow and flee
	10: move(corner).over(500, motion.EaseInOut),                                     // corner escape
	11: move(uniform).rotate(360).scale(0.9).over(400, motion.EaseOut),               // spin
	12: move(uniform).opacity(0.3).blur(1).over(250, motion.EaseInOut),               // vanish
	13: move(repel).rotate(-10).scale(0.85).opacity(0.7).over(200, motion.BackInOut), // everything at once
}

// Reduced-motion tiers keep each full tier's strategy but swap large
// transforms for opacity and brightness cues and shorter transitions.
var reducedTiers = [...]Profile{
	0:  move(uniform).over(150, motion.EaseOut),
	1:  move(uniform).over(150, motion.EaseOut),
	2:  move(edge).opacity(0.9).over(150, motion.EaseOut),
	3:  move(uniform).opacity(0.85).over(150, motion.EaseOut),
	4:  move(repel).over(150, motion.EaseOut),
	5:  move(uniform).brightness(0.9).over(150, motion.EaseOut),
	6:  move(uniform).opacity(0.8).over(150, motion.EaseOut),
	7:  move(uniform).opacity(0.75).over(150, motion.EaseOut),
	8:  move(hop2).over(100, motion.EaseOut),
	9:  move(uniform).brightness(1.1).over(150, motion.EaseOut),
	10: move(corner).over(200, motion.EaseOut),
	11: move(uniform).opacity(0.7).over(150, motion.EaseOut),
	12: move(uniform).opacity(0.65).over(150, motion.EaseOut),
	13: move(repel).opacity(0.6).over(100, motion.EaseOut),
}

// Cyclic fallbacks, indexed independently of the tier tables
var fullCycle = [...]Profile{
	move(repel).rotate(25).scale(0.95).over(300, motion.EaseOut), // zigzag
	move(uniform).rotate(-180).opacity(0.6).over(350, motion.EaseInOut),
	move(corner).scale(0.7).over(400, motion.BackInOut),
	move(uniform).scale(1.15).blur(1.5).over(300, motion.EaseOut),
	move(edge).rotate(15).opacity(0.8).over(250, motion.EaseInOut),
}

var reducedCycle = [...]Profile{
	move(uniform).opacity(0.55).over(150, motion.EaseOut),
	move(repel).brightness(0.85).over(150, motion.EaseOut),
	move(corner).opacity(0.7).over(200, motion.EaseOut),
}

// Premonition tiers apply below the evasion threshold. They never move the
// control.
var fullPremonition = [...]Profile{
	Profile{}.scale(1.04).over(200, motion.BackOut),
	Profile{}.opacity(0.92).scale(0.97).over(200, motion.EaseOut),
	Profile{}.brightness(1.08).scale(1.03).over(150, motion.EaseInOut),
}

var reducedPremonition = [...]Profile{
	Profile{}.opacity(0.95).over(100, motion.EaseOut),
	Profile{}.brightness(1.05).over(100, motion.EaseOut),
	Profile{}.opacity(0.9).over(100, motion.EaseOut),
}

// TierCount is the number of explicit tiers per motion mode
const TierCount = len(fullTiers)

// LastTier is the highest attempt count with an explicit tier
const LastTier = TierCount - 1

// PremonitionCount is the number of premonition tiers; evasion thresholds
// above it are rejected by configuration.
const PremonitionCount = len(fullPremonition)

// Select returns the evasion profile for an attempt count
func Select(attempts int, reduced bool) Profile {
	if attempts < 0 {
		attempts = 0
	}
	tiers, cycle := fullTiers[:], fullCycle[:]
	if reduced {
		tiers, cycle = reducedTiers[:], reducedCycle[:]
	}
	if attempts < len(tiers) {
		return tiers[attempts]
	}
	return cycle[(attempts-len(tiers))%len(cycle)]
}

// Premonition returns the pre-threshold cue for an attempt count. Counts past
// the table reuse its last entry.
func Premonition(attempts int, reduced bool) Profile {
	table := fullPremonition[:]
	if reduced {
		table = reducedPremonition[:]
	}
	if attempts < 0 {
		attempts = 0
	}
	if attempts >= len(table) {
		attempts = len(table) - 1
	}
	return table[attempts]
}

// Resolve picks between the premonition table and the evasion tiers
func Resolve(attempts int, reduced bool, threshold int) Profile {
	if attempts < threshold {
		return Premonition(attempts, reduced)
	}
	return Select(attempts, reduced)
}

// Cycle returns a copy of the cyclic fallback list for a motion mode
func Cycle(reduced bool) []Profile {
	if reduced {
		return append([]Profile(nil), reducedCycle[:]...)
	}
	return append([]Profile(nil), fullCycle[:]...)
}

// Tiers returns a copy of the explicit tier table for a motion mode
func Tiers(reduced bool) []Profile {
	if reduced {
		return append([]Profile(nil), reducedTiers[:]...)
	}
	return append([]Profile(nil), fullTiers[:]...)
}
