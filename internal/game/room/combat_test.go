package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/strike-arena/internal/protocol"
	"github.com/palemoky/strike-arena/internal/server/session"
	"github.com/palemoky/strike-arena/internal/testutil"
)

// combatFixture wires up a live round with one attacker and one target.
type combatFixture struct {
	rm       *RoomManager
	room     *Room
	attacker *testutil.SimpleClient
	target   *testutil.SimpleClient
	atkSess  *session.PlayerSession
	tgtSess  *session.PlayerSession
}

func newCombatFixture(t *testing.T) *combatFixture {
	t.Helper()

	rm := newTestManager()
	r, attacker, atkSess := createTestRoom(t, rm, "attacker")
	target, tgtSess := joinTestRoom(t, rm, r.ID, "target")
	atkSess.SetTeam(protocol.TeamT)
	tgtSess.SetTeam(protocol.TeamCT)

	forceState(r, RoomStatusPlaying, RoundState{Status: RoundLive, Timer: 100, Round: 1})
	attacker.Reset()
	target.Reset()

	return &combatFixture{rm: rm, room: r, attacker: attacker, target: target, atkSess: atkSess, tgtSess: tgtSess}
}

func TestHitAppliesReportedDamage(t *testing.T) {
	t.Parallel()

	f := newCombatFixture(t)
	f.rm.ApplyClientReportedHit(f.attacker, "target", 30, protocol.Vec3{})

	// The reported value is applied verbatim, no server-side recomputation.
	assert.Equal(t, 70, f.tgtSess.Health())
	assert.False(t, f.tgtSess.IsDead())

	for _, c := range []*testutil.SimpleClient{f.attacker, f.target} {
		msg := c.LastOfType(protocol.MsgPlayerDamaged)
		require.NotNil(t, msg)
		payload, err := protocol.ParsePayload[protocol.PlayerDamagedPayload](msg)
		require.NoError(t, err)
		assert.Equal(t, "target", payload.ID)
		assert.Equal(t, 70, payload.Health)
	}
	assert.Equal(t, 0, f.attacker.CountType(protocol.MsgPlayerDied))
}

func TestLethalHitHealthGoesNegative(t *testing.T) {
	t.Parallel()

	f := newCombatFixture(t)
	force := protocol.Vec3{X: 1.5, Y: 0, Z: -2}
	f.rm.ApplyClientReportedHit(f.attacker, "target", 150, force)

	// Overkill damage is not clamped.
	assert.Equal(t, -50, f.tgtSess.Health())
	assert.True(t, f.tgtSess.IsDead())
	assert.Equal(t, 1, f.tgtSess.Deaths())
	assert.Equal(t, 1, f.atkSess.Kills())

	assert.Equal(t, 1, f.target.CountType(protocol.MsgPlayerDied))
	msg := f.target.LastOfType(protocol.MsgPlayerDied)
	payload, err := protocol.ParsePayload[protocol.PlayerDiedPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "target", payload.VictimID)
	assert.Equal(t, "attacker", payload.KillerID)
	assert.Equal(t, force, payload.Force)
}

// Hitting a corpse changes nothing: no damage, no events, counters stay put.
func TestHitOnDeadTargetIsNoOp(t *testing.T) {
	t.Parallel()

	f := newCombatFixture(t)
	f.rm.ApplyClientReportedHit(f.attacker, "target", 150, protocol.Vec3{})
	require.True(t, f.tgtSess.IsDead())

	f.attacker.Reset()
	f.target.Reset()
	f.rm.ApplyClientReportedHit(f.attacker, "target", 50, protocol.Vec3{})

	assert.Equal(t, -50, f.tgtSess.Health())
	assert.Equal(t, 1, f.tgtSess.Deaths())
	assert.Equal(t, 1, f.atkSess.Kills())
	assert.Empty(t, f.attacker.SentMessages())
	assert.Empty(t, f.target.SentMessages())
}

func TestDamageRejectedOutsideCombatPhases(t *testing.T) {
	t.Parallel()

	for _, phase := range []RoundStatus{RoundFreeze, RoundEnd, RoundWaiting} {
		f := newCombatFixture(t)
		forceState(f.room, RoomStatusPlaying, RoundState{Status: phase, Timer: 10, Round: 1})

		f.rm.ApplyClientReportedHit(f.attacker, "target", 30, protocol.Vec3{})

		assert.Equal(t, session.FullHealth, f.tgtSess.Health(), "phase %s", phase)
		assert.Empty(t, f.target.SentMessages(), "phase %s", phase)
	}
}

// Warmup allows damage just like live.
func TestDamageAllowedDuringWarmup(t *testing.T) {
	t.Parallel()

	f := newCombatFixture(t)
	forceState(f.room, RoomStatusPlaying, RoundState{Status: RoundWarmup, Timer: 10})

	f.rm.ApplyClientReportedHit(f.attacker, "target", 25, protocol.Vec3{})

	assert.Equal(t, 75, f.tgtSess.Health())
	assert.Equal(t, 1, f.target.CountType(protocol.MsgPlayerDamaged))
}

func TestHitIgnoredForOutsiders(t *testing.T) {
	t.Parallel()

	f := newCombatFixture(t)

	// Unknown target.
	f.rm.ApplyClientReportedHit(f.attacker, "nobody", 30, protocol.Vec3{})
	assert.Empty(t, f.target.SentMessages())

	// Attacker not in any room.
	stranger := testutil.NewSimpleClient("stranger", "stranger")
	f.rm.ApplyClientReportedHit(stranger, "target", 30, protocol.Vec3{})
	assert.Equal(t, session.FullHealth, f.tgtSess.Health())

	// Attacker claims a room it is not a member of.
	stranger.SetRoom(f.room.ID)
	f.rm.ApplyClientReportedHit(stranger, "target", 30, protocol.Vec3{})
	assert.Equal(t, session.FullHealth, f.tgtSess.Health())
	assert.Empty(t, f.target.SentMessages())
}

// Combat never ends the round by itself; the next tick picks up the wipe.
func TestEliminationDetectedOnNextTick(t *testing.T) {
	t.Parallel()

	f := newCombatFixture(t)
	f.rm.ApplyClientReportedHit(f.attacker, "target", 150, protocol.Vec3{})

	assert.Equal(t, RoundLive, f.room.Round.Status)
	assert.Equal(t, 0, f.room.Round.ScoreT)

	f.room.Tick()

	assert.Equal(t, RoundEnd, f.room.Round.Status)
	assert.Equal(t, protocol.TeamT, f.room.Round.Winner)
	assert.Equal(t, 1, f.room.Round.ScoreT)
}
