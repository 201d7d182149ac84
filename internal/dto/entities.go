package dto

// DeleteEntitiesRequest lists the ids to remove from one entity collection.
type DeleteEntitiesRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,required"`
}

// DeleteEntitiesResponse reports how many entities were removed.
type DeleteEntitiesResponse struct {
	Kind    string `json:"kind"`
	Deleted int64  `json:"deleted"`
}
