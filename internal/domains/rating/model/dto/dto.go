package dto

import (
	"drivingschool/internal/domains/rating/model"
	"drivingschool/shared"
	gDto "drivingschool/shared/dto"
	gModel "drivingschool/shared/model"
	"math"

	"github.com/google/uuid"
)

type RateLessonRequest struct {
	Rating  int     `json:"rating"  validate:"required,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=1000"`
}

func (r *RateLessonRequest) ToModel(userID, reservationID, instructorID string) model.Rating {
	return model.Rating{
		ID:            uuid.NewString(),
		UserID:        userID,
		ReservationID: reservationID,
		InstructorID:  instructorID,
		Rating:        r.Rating,
		Comment:       r.Comment,
		Metadata: gModel.Metadata{
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type RatingResponse struct {
	ID            string  `json:"id"`
	ReservationID string  `json:"reservation_id"`
	InstructorID  string  `json:"instructor_id"`
	Rating        int     `json:"rating"`
	Comment       *string `json:"comment,omitempty"`
	UserName      string  `json:"user_name,omitempty"`
	gDto.Metadata
}

func (r *RatingResponse) FromModel(rating model.Rating) {
	r.ID = rating.ID
	r.ReservationID = rating.ReservationID
	r.InstructorID = rating.InstructorID
	r.Rating = rating.Rating
	r.Comment = rating.Comment
	r.UserName = rating.UserName
	r.Metadata.FromModel(rating.Metadata)
}

type InstructorRatingsResponse struct {
	InstructorID string           `json:"instructor_id"`
	Average      float64          `json:"average"`
	Total        int              `json:"total"`
	Ratings      []RatingResponse `json:"ratings"`
	TotalPage    int              `json:"total_page"`
}

// FromModels rounds the average to one decimal.
func (r *InstructorRatingsResponse) FromModels(instructorID string, summary model.Summary, ratings []model.Rating, limit int) {
	r.InstructorID = instructorID
	r.Average = math.Round(summary.Average*10) / 10
	r.Total = summary.Total
	r.TotalPage = shared.CalculateTotalPage(summary.Total, limit)

	r.Ratings = make([]RatingResponse, len(ratings))
	for i, rating := range ratings {
		r.Ratings[i].FromModel(rating)
	}
}
