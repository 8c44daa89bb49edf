package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	storage "github.com/okian/meeple/internal/adapters/storage"
	service "github.com/okian/meeple/internal/app"
	scoring "github.com/okian/meeple/internal/domain/scoring"
	trend "github.com/okian/meeple/internal/domain/trend"
	. "github.com/smartystreets/goconvey/convey"
)

// End-to-end run over the sqlite backend: a game night with several
// sessions, then a restart and a backup round-trip.
func TestServiceLifecycleSQLite(t *testing.T) {
	ctx := context.Background()

	Convey("Given a sqlite-backed service with four players", t, func() {
		path := filepath.Join(t.TempDir(), "night.db")
		store, err := storage.NewSQLiteStore(ctx, path)
		So(err, ShouldBeNil)

		clock := func() time.Time {
			return time.Date(2024, 8, 15, 19, 0, 0, 0, time.UTC)
		}
		svc := service.New(
			service.WithStore(store),
			service.WithClock(clock),
		)
		for _, name := range []string{"alice", "bob", "carol", "dave"} {
			So(svc.AddPlayer(ctx, name, ""), ShouldBeNil)
		}

		Convey("When a game night of three sessions is recorded", func() {
			sessionsSpec := [][]scoring.Entry{
				{played("alice", "50"), played("bob", "30"), played("carol", "10")},
				{played("bob", "42"), played("carol", "42"), played("dave", "17")},
				{played("alice", "8"), played("dave", "12"),
					{Name: "carol", RawScore: "20", Participated: false}},
			}
			for _, entries := range sessionsSpec {
				_, err := svc.RecordSession(ctx, "Catan", entries)
				So(err, ShouldBeNil)
			}

			Convey("Then every session's places form exactly 1..n", func() {
				for _, s := range svc.Sessions(ctx) {
					for i, score := range s.Scores {
						So(score.Place, ShouldEqual, i+1)
					}
				}
			})

			Convey("And per-player games match sessions participated", func() {
				byName := indexPlayers(svc.Players(ctx))
				So(byName["alice"].Games, ShouldEqual, 2)
				So(byName["bob"].Games, ShouldEqual, 2)
				So(byName["carol"].Games, ShouldEqual, 2)
				So(byName["dave"].Games, ShouldEqual, 2)
				So(byName["alice"].AvgPlacement, ShouldEqual,
					byName["alice"].PlacementSum/2)
			})

			Convey("And the tied session split the win by input order", func() {
				byName := indexPlayers(svc.Players(ctx))
				So(byName["bob"].Wins, ShouldEqual, 1)
				So(byName["carol"].Wins, ShouldEqual, 0)
			})

			Convey("And a restart sees the identical state", func() {
				reopened, err := storage.NewSQLiteStore(ctx, path)
				So(err, ShouldBeNil)
				fresh := service.New(service.WithStore(reopened))
				So(fresh.Load(ctx), ShouldBeNil)

				So(fresh.Players(ctx), ShouldResemble, svc.Players(ctx))
				So(fresh.Sessions(ctx), ShouldResemble, svc.Sessions(ctx))
				So(fresh.Close(), ShouldBeNil)
			})

			Convey("And export/import is idempotent across backends", func() {
				data, err := svc.ExportState(ctx)
				So(err, ShouldBeNil)

				jsonBacked := service.New(service.WithStore(
					storage.NewFileStore(filepath.Join(t.TempDir(), "copy.json"))))
				So(jsonBacked.ImportState(ctx, data), ShouldBeNil)

				So(jsonBacked.Players(ctx), ShouldResemble, svc.Players(ctx))
				So(jsonBacked.Sessions(ctx), ShouldResemble, svc.Sessions(ctx))

				Convey("And the trend series are identical too", func() {
					for _, metric := range []trend.Metric{
						trend.MetricPlacement, trend.MetricDominance, trend.MetricGameScore,
					} {
						So(jsonBacked.TrendSeries(ctx, metric),
							ShouldResemble, svc.TrendSeries(ctx, metric))
					}
				})
			})
		})
	})
}
