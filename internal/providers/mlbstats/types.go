package mlbstats

type teamsResponse struct {
	Teams []teamPayload `json:"teams"`
}

type teamPayload struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type scheduleResponse struct {
	Dates []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string        `json:"date"`
	Games []gamePayload `json:"games"`
}

type gamePayload struct {
	GamePk       int            `json:"gamePk"`
	GameType     string         `json:"gameType"`
	OfficialDate string         `json:"officialDate"`
	GameDate     string         `json:"gameDate"`
	GameNumber   int            `json:"gameNumber"`
	DoubleHeader string         `json:"doubleHeader"`
	Status       statusPayload  `json:"status"`
	Teams        matchupPayload `json:"teams"`
}

type statusPayload struct {
	AbstractGameState string `json:"abstractGameState"`
	DetailedState     string `json:"detailedState"`
}

type matchupPayload struct {
	Home sidePayload `json:"home"`
	Away sidePayload `json:"away"`
}

type sidePayload struct {
	Team     teamRef `json:"team"`
	Score    *int    `json:"score"`
	IsWinner *bool   `json:"isWinner"`
}

type teamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
