// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

// Package mockdata generates a deterministic demo dataset of MaisonMai usage
// events and entity records. A Fixture is built lazily on first use and is
// owned by whoever constructs it; nothing here is package-level state.
package mockdata

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/maisonmai/analytics/internal/models"
)

// Options controls the size and shape of the generated dataset.
type Options struct {
	Seed  uint64
	Users int
	Days  int
	// End is the last calendar day that may contain data.
	End time.Time
}

// DefaultOptions returns a 60-day, 80-user dataset ending on end.
func DefaultOptions(end time.Time) Options {
	return Options{Seed: 42, Users: 80, Days: 60, End: end}
}

// Fixture is a lazily generated dataset. Safe for concurrent use.
type Fixture struct {
	opts    Options
	once    sync.Once
	events  []models.Event
	records []models.EntityRecord
}

// New returns a fixture; nothing is generated until first access.
func New(opts Options) *Fixture {
	if opts.Users <= 0 {
		opts.Users = 1
	}
	if opts.Days <= 0 {
		opts.Days = 1
	}
	return &Fixture{opts: opts}
}

// Events returns a copy of every event, ascending by timestamp.
func (f *Fixture) Events() []models.Event {
	f.once.Do(f.generate)
	return slices.Clone(f.events)
}

// Records returns a copy of every entity record, ascending by creation time.
func (f *Fixture) Records() []models.EntityRecord {
	f.once.Do(f.generate)
	return slices.Clone(f.records)
}

// AggregateCounts counts entity records created within the inclusive day
// range. Nil bounds are unbounded.
func (f *Fixture) AggregateCounts(from, to *time.Time) models.AggregateCounts {
	f.once.Do(f.generate)
	return CountRecords(f.records, from, to)
}

// CountRecords counts records by kind whose CreatedAt falls within
// [from 00:00, to 23:59:59.999999999] UTC.
func CountRecords(records []models.EntityRecord, from, to *time.Time) models.AggregateCounts {
	var counts models.AggregateCounts
	for _, r := range records {
		if from != nil && r.CreatedAt.Before(startOfDay(*from)) {
			continue
		}
		if to != nil && !r.CreatedAt.Before(startOfDay(*to).AddDate(0, 0, 1)) {
			continue
		}
		counts.Add(r.Kind, 1)
	}
	return counts
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// generator carries the state of one generation run.
type generator struct {
	rng     *rand.Rand
	start   time.Time
	days    int
	seq     int
	events  []models.Event
	records []models.EntityRecord
}

func (f *Fixture) generate() {
	g := &generator{
		rng:   rand.New(rand.NewPCG(f.opts.Seed, f.opts.Seed^0x9e3779b97f4a7c15)),
		start: startOfDay(f.opts.End).AddDate(0, 0, -(f.opts.Days - 1)),
		days:  f.opts.Days,
	}
	for i := 0; i < f.opts.Users; i++ {
		g.user(i)
	}

	sort.SliceStable(g.events, func(i, j int) bool {
		return g.events[i].Timestamp.Before(g.events[j].Timestamp)
	})
	sort.SliceStable(g.records, func(i, j int) bool {
		return g.records[i].CreatedAt.Before(g.records[j].CreatedAt)
	})
	f.events, f.records = g.events, g.records
}

func stableID(kind string, parts ...any) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprint(append([]any{"maisonmai", kind}, parts...)...))).String()
}

func (g *generator) chance(pct int) bool {
	return g.rng.IntN(100) < pct
}

// session is a cursor over one visit; each event advances time a little.
type session struct {
	g      *generator
	id     string
	userID string
	now    time.Time
}

func (g *generator) newSession(userIdx, n, day int, userID string) *session {
	return &session{
		g:      g,
		id:     stableID("session", userIdx, n),
		userID: userID,
		now:    g.start.AddDate(0, 0, day).Add(time.Duration(7*60+g.rng.IntN(12*60)) * time.Minute),
	}
}

func (s *session) emit(md models.EventMetadata) {
	s.now = s.now.Add(time.Duration(1+s.g.rng.IntN(6)) * time.Minute)
	s.g.seq++
	s.g.events = append(s.g.events, models.Event{
		ID:        stableID("event", s.g.seq),
		UserID:    s.userID,
		SessionID: s.id,
		Type:      md.EventType(),
		Timestamp: s.now,
		Metadata:  md,
	})
}

func (s *session) record(kind models.EntityKind) {
	s.g.seq++
	s.g.records = append(s.g.records, models.EntityRecord{
		ID:        stableID(string(kind), s.g.seq),
		Kind:      kind,
		CreatedAt: s.now,
	})
}

// user simulates one visitor: an anonymous landing visit, sign-up, profile
// and questionnaire flow, idea generation, and optional return visits.
func (g *generator) user(i int) {
	userID := stableID("user", i)
	signup := g.rng.IntN(g.days)

	landing := g.newSession(i, 0, signup, "")
	landing.emit(models.PageViewMetadata{Path: "/", Referrer: pick(g.rng, referrers)})
	if !g.chance(75) {
		return
	}

	s := g.newSession(i, 1, signup, userID)
	s.now = landing.now
	s.emit(models.PageViewMetadata{Path: "/signup"})
	s.emit(models.AccountMetadata{SignupMethod: pick(g.rng, signupMethods)})
	s.record(models.EntityUser)

	profiles := 1
	if g.chance(25) {
		profiles = 2
	}
	for p := 0; p < profiles && g.chance(80); p++ {
		g.giftJourney(s, i, p)
	}

	visits := 0
	if g.chance(45) {
		visits = 1 + g.rng.IntN(3)
	}
	day := signup
	for v := 0; v < visits; v++ {
		day += 1 + g.rng.IntN(10)
		if day >= g.days {
			break
		}
		rs := g.newSession(i, 2+v, day, userID)
		rs.emit(models.PageViewMetadata{Path: "/dashboard"})
		if g.chance(55) {
			g.ideas(rs, stableID("profile", i, 0))
		}
	}
}

func (g *generator) giftJourney(s *session, userIdx, p int) {
	profileID := stableID("profile", userIdx, p)
	s.emit(models.ProfileMetadata{ProfileID: profileID, Relationship: pick(g.rng, relationships)})
	s.record(models.EntityProfile)
	s.record(models.EntityPerson)
	if g.chance(20) {
		s.record(models.EntityPerson)
	}

	if !g.chance(85) {
		return
	}
	occasion := pick(g.rng, occasions)
	s.emit(models.QuestionnaireMetadata{ProfileID: profileID, Occasion: occasion})
	s.record(models.EntityQuestionnaire)

	if !g.chance(90) {
		return
	}
	g.ideas(s, profileID)

	if g.chance(40) {
		remindOn := s.now.AddDate(0, 1+g.rng.IntN(6), 0).Format(models.DateLayout)
		s.emit(models.ReminderMetadata{ProfileID: profileID, Occasion: occasion, RemindOn: remindOn})
		s.record(models.EntityReminder)
	}
}

// ideas emits one generation event followed by saves and partner clicks.
func (g *generator) ideas(s *session, profileID string) {
	n := 3 + g.rng.IntN(4)
	picked := g.rng.Perm(len(catalog))[:n]
	items := make([]models.RecommendationItem, n)
	for k, idx := range picked {
		items[k] = catalog[idx]
	}
	s.emit(models.IdeasGeneratedMetadata{ProfileID: profileID, Ideas: items})

	for _, it := range items {
		isSaved := g.chance(30)
		if isSaved {
			s.emit(models.IdeaSavedMetadata{IdeaID: it.IdeaID, ProductName: it.ProductName, Category: it.Category, ShopName: it.ShopName})
			s.record(models.EntityGiftIdea)
		}
		if (isSaved && g.chance(50)) || (!isSaved && g.chance(8)) {
			s.emit(models.OutboundClickMetadata{IdeaID: it.IdeaID, URL: it.URL, ShopName: it.ShopName, Category: it.Category})
			s.record(models.EntityPartnerClick)
		}
	}
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.IntN(len(options))]
}
