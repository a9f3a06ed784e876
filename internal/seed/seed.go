package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/jaswdr/faker"
	"github.com/rs/zerolog"

	"github.com/emre/hardwarehub/internal/app/gateway"
	"github.com/emre/hardwarehub/internal/app/models"
)

// Options controls how much demo data the seeder pushes
type Options struct {
	Profiles int
	Comments int
}

// Run pushes faker-generated member profiles and review comments
// through the gateway against a live backend. Intended for demo and
// development environments only.
func Run(ctx context.Context, gw *gateway.Client, opts Options, lgr zerolog.Logger) error {
	fake := faker.New()

	tags, err := gw.Tags(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	if len(tags) == 0 {
		return fmt.Errorf("backend has no tags to assign")
	}

	created := make([]models.Profile, 0, opts.Profiles)
	for i := 0; i < opts.Profiles; i++ {
		first := fake.Person().FirstName()
		last := fake.Person().LastName()
		username := fmt.Sprintf("%s.%s%d", strings.ToLower(first), strings.ToLower(last), rand.Intn(10000))
		password := fake.Internet().Password()

		profile, err := gw.CreateProfile(ctx, gateway.ProfileUpload{
			Username:       username,
			Email:          fake.Internet().Email(),
			Password:       password,
			RepeatPassword: password,
			ProfileTypeID:  models.ProfileTypeMember,
			TagIDs:         pickTags(tags),
		})
		if err != nil {
			lgr.Warn().Err(err).Str("username", username).Msg("Seed profile rejected, skipping")
			continue
		}
		created = append(created, *profile)
	}
	lgr.Info().Int("count", len(created)).Msg("Seed profiles created")

	if opts.Comments == 0 || len(created) == 0 {
		return nil
	}

	reviews, err := gw.Reviews(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reviews: %w", err)
	}
	if len(reviews) == 0 {
		lgr.Warn().Msg("Backend has no reviews, skipping comment seeding")
		return nil
	}

	posted := 0
	for i := 0; i < opts.Comments; i++ {
		author := created[rand.Intn(len(created))]
		review := reviews[rand.Intn(len(reviews))]

		_, err := gw.CreateComment(ctx, gateway.CommentInput{
			UserID:   author.ID,
			ReviewID: review.ID,
			Content:  fake.Lorem().Sentence(12),
		})
		if err != nil {
			lgr.Warn().Err(err).Int64("reviewId", review.ID).Msg("Seed comment rejected, skipping")
			continue
		}
		posted++
	}
	lgr.Info().Int("count", posted).Msg("Seed comments posted")

	return nil
}

// pickTags selects one to three distinct tag ids
func pickTags(tags []models.Tag) []int64 {
	count := 1 + rand.Intn(3)
	if count > len(tags) {
		count = len(tags)
	}
	picked := make([]int64, 0, count)
	for _, i := range rand.Perm(len(tags))[:count] {
		picked = append(picked, tags[i].ID)
	}
	return picked
}
