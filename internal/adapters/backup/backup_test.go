package backup_test

import (
	"testing"
	"time"

	backup "github.com/okian/meeple/internal/adapters/backup"
	model "github.com/okian/meeple/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExportParseRoundTrip(t *testing.T) {
	Convey("Given a populated state", t, func() {
		players := []model.Player{
			{Name: "alice", Color: "#ff0000", Games: 3, Wins: 2,
				PlacementSum: 4, AvgPlacement: 4.0 / 3,
				BiggestWin: &model.BiggestWin{Percent: 1.2, Game: "Catan",
					Date: time.Date(2024, 2, 2, 20, 0, 0, 0, time.UTC)}},
			{Name: "bob", Games: 1},
		}
		sessions := []model.GameSession{
			{ID: "s-1", Game: "Catan", Date: time.Date(2024, 2, 2, 20, 0, 0, 0, time.UTC),
				Scores: []model.SessionScore{
					{Name: "alice", Score: 11, Place: 1, Dominance: 1, GameScore: 100},
					{Name: "bob", Score: 5, Place: 2, Dominance: 0, GameScore: 0},
				}},
		}

		Convey("When exporting and re-importing", func() {
			data, err := backup.Export(players, sessions)
			So(err, ShouldBeNil)

			doc, err := backup.Parse(data)
			So(err, ShouldBeNil)

			Convey("Then the document reproduces the state exactly", func() {
				So(doc.Players, ShouldResemble, players)
				So(doc.Sessions, ShouldResemble, sessions)
			})
		})
	})

	Convey("Given empty state", t, func() {
		Convey("When exporting nil collections", func() {
			data, err := backup.Export(nil, nil)
			So(err, ShouldBeNil)

			doc, err := backup.Parse(data)
			So(err, ShouldBeNil)

			Convey("Then both collections come back empty, not nil", func() {
				So(doc.Players, ShouldNotBeNil)
				So(doc.Players, ShouldBeEmpty)
				So(doc.Sessions, ShouldNotBeNil)
				So(doc.Sessions, ShouldBeEmpty)
			})
		})
	})
}

func TestParseRejectsMalformed(t *testing.T) {
	Convey("Given malformed inputs", t, func() {
		cases := map[string]string{
			"not JSON at all":        `{"players": [`,
			"wrong collection shape": `{"players": 42, "sessions": []}`,
			"player without a name":  `{"players": [{"color": "#fff", "games": 1}], "sessions": []}`,
			"negative games":         `{"players": [{"name": "x", "games": -1}], "sessions": []}`,
			"wins exceeding games":   `{"players": [{"name": "x", "games": 1, "wins": 2}], "sessions": []}`,
			"duplicate player names": `{"players": [{"name": "x"}, {"name": "x"}], "sessions": []}`,
			"score without a place":  `{"players": [], "sessions": [{"game": "g", "scores": [{"name": "x", "place": 0}]}]}`,
		}

		for label, payload := range cases {
			Convey("When parsing "+label, func() {
				_, err := backup.Parse([]byte(payload))

				Convey("Then the import is rejected", func() {
					So(err, ShouldWrap, backup.ErrMalformedImport)
				})
			})
		}
	})

	Convey("Given a document with absent collections", t, func() {
		doc, err := backup.Parse([]byte(`{}`))
		So(err, ShouldBeNil)

		Convey("Then they normalize to empty", func() {
			So(doc.Players, ShouldBeEmpty)
			So(doc.Sessions, ShouldBeEmpty)
		})
	})
}
