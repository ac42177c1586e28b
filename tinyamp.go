// Package tinyamp aggregates live-music event listings for San Francisco
// venues. It scrapes venue websites, isolates artist names and event dates
// from noisy listing text, and reconciles repeated scrape results into a
// canonical set of event, artist, and venue records.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, rod/), and the
// pipeline orchestration lives in ingest/.
package tinyamp
