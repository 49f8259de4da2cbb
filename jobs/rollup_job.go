package jobs

import (
	"log"
	"sync"

	config "github.com/alfianmal/vidshare/configs"
	"github.com/alfianmal/vidshare/database"
	"github.com/alfianmal/vidshare/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var rollupMu sync.Mutex

type rollupKey struct {
	UserID uuid.UUID
	Date   string
}

// RunRollup folds the raw view log into per-user daily aggregates and then
// reclaims the folded rows. The recompute is authoritative: it overwrites
// aggregate rows rather than adding to them, so rerunning it over the same
// log is idempotent and it wins any race with the live merge path. Views
// whose video has been deleted are folded into the uuid.Nil bucket so the
// total served count survives.
func RunRollup() {
	if !rollupMu.TryLock() {
		log.Println("[rollup] previous run still in flight, skipping")
		return
	}
	defer rollupMu.Unlock()

	log.Println("Running job: RunRollup...")

	folded, deleted, err := rollupOnce()
	if err != nil {
		log.Printf("🔥 [rollup] aggregation failed, raw view log left intact: %v", err)
		return
	}
	log.Printf("[rollup] folded %d aggregate row(s), deleted %d raw view(s)", folded, deleted)
}

func rollupOnce() (folded int, deleted int64, err error) {
	credit := config.CreditPerView()

	var views []models.View
	if err := database.DB.Order("id ASC").Find(&views).Error; err != nil {
		return 0, 0, err
	}
	if len(views) == 0 {
		log.Println("[rollup] no raw views to fold")
		return 0, 0, nil
	}
	foldedIDs := make([]uint, 0, len(views))
	for _, v := range views {
		foldedIDs = append(foldedIDs, v.ID)
	}

	videoIDs := make([]uuid.UUID, 0, len(views))
	seen := make(map[uuid.UUID]bool)
	for _, v := range views {
		if !seen[v.VideoID] {
			seen[v.VideoID] = true
			videoIDs = append(videoIDs, v.VideoID)
		}
	}

	var videos []models.Video
	if err := database.DB.Select("id", "user_id").Find(&videos, "id IN ?", videoIDs).Error; err != nil {
		return 0, 0, err
	}
	owner := make(map[uuid.UUID]uuid.UUID, len(videos))
	for _, v := range videos {
		owner[v.ID] = v.UserID
	}

	counts := make(map[rollupKey]int64)
	for _, v := range views {
		key := rollupKey{
			UserID: owner[v.VideoID], // uuid.Nil when the video is gone
			Date:   v.CreatedAt.UTC().Format("2006-01-02"),
		}
		counts[key]++
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for key, n := range counts {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"views":    n,
					"earnings": float64(n) * credit,
				}),
			}).Create(&models.DailyStat{
				UserID:   key.UserID,
				Date:     key.Date,
				Views:    n,
				Earnings: float64(n) * credit,
			}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	// Delete only after the aggregation committed, and only the exact rows
	// that were read: views committed during the fold survive for the next
	// run regardless of when their id was allocated.
	res := database.DB.Where("id IN ?", foldedIDs).Delete(&models.View{})
	if res.Error != nil {
		log.Printf("🔥 [rollup] delete of folded views failed, next run will refold them: %v", res.Error)
		return len(counts), 0, nil
	}
	return len(counts), res.RowsAffected, nil
}
