package contracts

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type AffectedResponse struct {
	Message  string `json:"message"`
	Affected int64  `json:"affected"`
}
