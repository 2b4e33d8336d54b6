// services/rating_service.go
package services

import (
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
	"github.com/rafaelbressan/marmitas.top/repository"
)

// Recency weighting for the displayed average: recent behavior dominates
// without discarding history.
const (
	recentBucketAge = 30 * 24 * time.Hour
	mediumBucketAge = 90 * 24 * time.Hour

	recentWeight = 0.6
	mediumWeight = 0.3
	oldWeight    = 0.1

	// Below this many published reviews no average is displayed at all.
	minReviewsForRating = 5
	// Below this many reviews the trend signal is too noisy to report.
	minReviewsForTrend = 10
	trendDelta         = 0.3
)

// Rating trends.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// RatingService recomputes the cached rating columns on a seller from the
// seller's published review set. It is invoked inside the same transaction
// as every review mutation.
type RatingService struct {
	Reviews *repository.ReviewRepository
	Sellers *repository.SellerRepository
	Now     func() time.Time
}

func NewRatingService(reviews *repository.ReviewRepository, sellers *repository.SellerRepository) *RatingService {
	return &RatingService{Reviews: reviews, Sellers: sellers, Now: time.Now}
}

// Recalculate refreshes average_rating, reviews_count and the five
// distribution counters for the seller, inside the caller's transaction.
func (s *RatingService) Recalculate(tx *gorm.DB, sellerProfileID uint) error {
	rows, err := s.Reviews.PublishedRatings(tx, sellerProfileID)
	if err != nil {
		return err
	}

	total := len(rows)
	var avg float64
	var dist [5]int

	// Under the sample threshold nothing is displayed: zeroed average and
	// distribution, only the raw count survives.
	if total >= minReviewsForRating {
		avg = s.weightedAverage(rows)
		for _, row := range rows {
			if row.Rating >= 1 && row.Rating <= 5 {
				dist[row.Rating-1]++
			}
		}
	}

	return s.Sellers.UpdateRatingCache(tx, sellerProfileID, avg, total, dist)
}

func (s *RatingService) weightedAverage(rows []repository.RatingRow) float64 {
	now := s.Now()

	var sums [3]float64
	var counts [3]int
	for _, row := range rows {
		age := now.Sub(row.CreatedAt)
		var b int
		switch {
		case age <= recentBucketAge:
			b = 0
		case age <= mediumBucketAge:
			b = 1
		default:
			b = 2
		}
		sums[b] += float64(row.Rating)
		counts[b]++
	}

	weights := [3]float64{recentWeight, mediumWeight, oldWeight}
	var num, den float64
	for b := 0; b < 3; b++ {
		if counts[b] == 0 {
			continue
		}
		bucketAvg := sums[b] / float64(counts[b])
		num += weights[b] * bucketAvg * float64(counts[b])
		den += weights[b] * float64(counts[b])
	}
	if den == 0 {
		return 0
	}
	return math.Round(num/den*100) / 100
}

// DisplayRating reports whether the cached average may be shown; callers
// render a "new seller" indicator below the threshold.
func DisplayRating(sp *entity.SellerProfile) bool {
	return sp.ReviewsCount >= minReviewsForRating
}

// Trend compares recent reviews against older ones. Sellers with few
// reviews always read stable.
func (s *RatingService) Trend(sellerProfileID uint) (string, error) {
	rows, err := s.Reviews.PublishedRatings(s.Reviews.DB, sellerProfileID)
	if err != nil {
		return "", err
	}
	if len(rows) < minReviewsForTrend {
		return TrendStable, nil
	}

	now := s.Now()
	var recentSum, olderSum float64
	var recentCount, olderCount int
	for _, row := range rows {
		if now.Sub(row.CreatedAt) <= recentBucketAge {
			recentSum += float64(row.Rating)
			recentCount++
		} else {
			olderSum += float64(row.Rating)
			olderCount++
		}
	}
	if recentCount == 0 || olderCount == 0 {
		return TrendStable, nil
	}

	diff := recentSum/float64(recentCount) - olderSum/float64(olderCount)
	switch {
	case diff >= trendDelta:
		return TrendImproving, nil
	case diff <= -trendDelta:
		return TrendDeclining, nil
	default:
		return TrendStable, nil
	}
}

// Distribution returns the exact published star counts for a seller from
// the cached columns.
func Distribution(sp *entity.SellerProfile) map[int]int {
	return map[int]int{
		1: sp.Rating1Count,
		2: sp.Rating2Count,
		3: sp.Rating3Count,
		4: sp.Rating4Count,
		5: sp.Rating5Count,
	}
}
