package domain

import "time"

// JobView is the external JSON representation of a job.
type JobView struct {
	ID                  string   `json:"id"`
	State               JobState `json:"state"`
	CreatedAt           string   `json:"createdAt"`
	ExpiresAt           *string  `json:"expiresAt"`
	OriginalFilePath    string   `json:"originalFilePath,omitempty"`
	DestinationFilePath string   `json:"destinationFilePath,omitempty"`
	FrameRate           int      `json:"frameRate,omitempty"`
	Quality             Quality  `json:"quality,omitempty"`
	QualityFactor       int      `json:"qualityFactor,omitempty"`
}

func (j *Job) View() JobView {
	v := JobView{
		ID:        j.ID,
		State:     j.State,
		CreatedAt: j.CreatedAt.Format(time.RFC3339),
	}
	if j.ExpiresAt != nil {
		expires := j.ExpiresAt.Format(time.RFC3339)
		v.ExpiresAt = &expires
	}

	switch j.Type {
	case JobTypeCompression:
		if c := j.Compression; c != nil {
			v.OriginalFilePath = c.OriginalFilePath
			v.DestinationFilePath = c.DestinationFilePath
			v.FrameRate = c.FrameRate
			v.Quality = c.Quality
			v.QualityFactor = c.QualityFactor
		}
	}
	return v
}
