// Package timezone pins every timestamp the school shows or stores to one
// configured zone (APP_TIMEZONE, an IANA name such as "Europe/Berlin").
// An empty or unknown zone falls back to UTC.
//
//	now := timezone.Now()
//	start, err := timezone.Parse(time.DateTime, "2025-03-14 09:00:00")
//	label := timezone.Format(start, constant.DateFormat)
package timezone
