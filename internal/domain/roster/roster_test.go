package roster_test

import (
	"testing"

	model "github.com/okian/meeple/internal/domain/model"
	roster "github.com/okian/meeple/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRosterAddRemove(t *testing.T) {
	Convey("Given an empty roster", t, func() {
		r := roster.New(nil)

		Convey("When adding a player", func() {
			err := r.Add("alice", "#ff0000")
			So(err, ShouldBeNil)

			Convey("Then the player starts with zeroed aggregates", func() {
				p := r.Find("alice")
				So(p, ShouldNotBeNil)
				So(p.Games, ShouldEqual, 0)
				So(p.Wins, ShouldEqual, 0)
				So(p.PlacementSum, ShouldEqual, 0.0)
				So(p.BiggestWin, ShouldBeNil)
			})

			Convey("And adding the same name again is rejected", func() {
				So(r.Add("alice", "#00ff00"), ShouldEqual, roster.ErrDuplicateName)
				So(r.Len(), ShouldEqual, 1)
			})

			Convey("And names are matched case-sensitively", func() {
				So(r.Add("Alice", "#0000ff"), ShouldBeNil)
				So(r.Len(), ShouldEqual, 2)
			})
		})

		Convey("When removing a player that exists", func() {
			So(r.Add("bob", ""), ShouldBeNil)
			So(r.Remove("bob"), ShouldBeNil)

			Convey("Then it is gone", func() {
				So(r.Find("bob"), ShouldBeNil)
				So(r.Len(), ShouldEqual, 0)
			})
		})

		Convey("When removing an unknown player", func() {
			So(r.Remove("ghost"), ShouldEqual, roster.ErrUnknownPlayer)
		})
	})
}

func TestRosterSort(t *testing.T) {
	Convey("Given a roster with mixed aggregates", t, func() {
		r := roster.New([]model.Player{
			{Name: "carol", Games: 3, Wins: 1, AvgGameScore: 40},
			{Name: "alice", Games: 5, Wins: 3, AvgGameScore: 80,
				BiggestWin: &model.BiggestWin{Percent: 0.7}},
			{Name: "bob", Games: 0}, // never played, all averages absent
			{Name: "dave", Games: 3, Wins: 1, AvgGameScore: 40},
		})

		Convey("When sorting by name ascending", func() {
			r.Sort(roster.FieldName, true)
			names := sortedNames(r)
			So(names, ShouldResemble, []string{"alice", "bob", "carol", "dave"})
		})

		Convey("When sorting by wins descending", func() {
			r.Sort(roster.FieldWins, false)
			So(sortedNames(r)[0], ShouldEqual, "alice")
		})

		Convey("When sorting by a field with ties", func() {
			r.Sort(roster.FieldAvgGameScore, false)

			Convey("Then the sort is stable for equal values", func() {
				names := sortedNames(r)
				So(names, ShouldResemble, []string{"alice", "carol", "dave", "bob"})
			})
		})

		Convey("When sorting by biggest win descending", func() {
			r.Sort(roster.FieldBiggestWin, false)

			Convey("Then players without a win sort as zero", func() {
				So(sortedNames(r)[0], ShouldEqual, "alice")
			})
		})

		Convey("When sorting by an unknown field", func() {
			before := sortedNames(r)
			r.Sort("nonsense", true)

			Convey("Then the order is unchanged", func() {
				So(sortedNames(r), ShouldResemble, before)
			})
		})
	})
}

func TestRosterPlayersIsolation(t *testing.T) {
	Convey("Given a roster", t, func() {
		r := roster.New([]model.Player{{Name: "alice", Games: 2}})

		Convey("When a consumer mutates the returned slice", func() {
			out := r.Players()
			out[0].Games = 99

			Convey("Then the roster is unaffected", func() {
				So(r.Find("alice").Games, ShouldEqual, 2)
			})
		})
	})
}

func sortedNames(r *roster.Roster) []string {
	players := r.Players()
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return names
}
