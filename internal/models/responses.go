// Package models defines the JSON shapes the REST API serves: the response
// envelope plus entry and reference types for routes, wards, and estimates.
package models

import (
	"net/http"
	"time"

	"gati.bengalurutransit.org/internal/clock"
)

// ResponseModel is the envelope wrapped around every API response.
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data,omitempty"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// EntryData is the data section of a single-entry response.
type EntryData struct {
	Entry      interface{}     `json:"entry"`
	References ReferencesModel `json:"references"`
}

// ListData is the data section of a list response.
type ListData struct {
	LimitExceeded bool            `json:"limitExceeded"`
	List          interface{}     `json:"list"`
	References    ReferencesModel `json:"references"`
}

// ReferencesModel carries the wards referenced by IDs elsewhere in the
// response, so entries can stay compact ID lists.
type ReferencesModel struct {
	Wards []WardReference `json:"wards"`
}

// NewEmptyReferences creates a ReferencesModel whose lists serialize as []
// rather than null.
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Wards: []WardReference{},
	}
}

// ResponseCurrentTime returns the envelope timestamp in Unix milliseconds.
func ResponseCurrentTime(c clock.Clock) int64 {
	return c.NowUnixMilli()
}

// NewOKResponse wraps data in a 200 envelope.
func NewOKResponse(data interface{}, c clock.Clock) ResponseModel {
	return ResponseModel{
		Code:        http.StatusOK,
		CurrentTime: ResponseCurrentTime(c),
		Data:        data,
		Text:        "OK",
		Version:     2,
	}
}

// NewEntryResponse wraps a single entry and its references in a 200 envelope.
func NewEntryResponse(entry interface{}, references ReferencesModel, c clock.Clock) ResponseModel {
	return NewOKResponse(EntryData{Entry: entry, References: references}, c)
}

// NewListResponse wraps a list and its references in a 200 envelope.
func NewListResponse(list interface{}, references ReferencesModel, limitExceeded bool, c clock.Clock) ResponseModel {
	return NewOKResponse(ListData{
		LimitExceeded: limitExceeded,
		List:          list,
		References:    references,
	}, c)
}

// CurrentTimeData is the payload of the current-time endpoint.
type CurrentTimeData struct {
	ReadableTime string `json:"readableTime"`
	Time         int64  `json:"time"`
}

// NewCurrentTimeData creates the current-time payload for t.
func NewCurrentTimeData(t time.Time) CurrentTimeData {
	return CurrentTimeData{
		ReadableTime: t.Format(time.RFC3339),
		Time:         t.UnixMilli(),
	}
}
