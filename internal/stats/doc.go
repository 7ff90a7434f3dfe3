// Package stats turns a snapshot of log entries and the tag catalog into
// display-ready day, settlement, week and month views.
//
// Every function here is pure: it reads the slices it is given and never
// writes back to them, so views can be recomputed on every render.
//
// Two kinds of filters are in use and they intentionally disagree at the
// edges. Daily and Settle match entries whose start falls on the same local
// calendar day as the reference time. Week and Month use a rolling window of
// 7 or 28 days ending at the reference instant, so an entry started at 08:00
// eight days ago is outside the week while one started at 10:00 is inside.
package stats
