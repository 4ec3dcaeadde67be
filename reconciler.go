package main

import (
	"github.com/rs/zerolog"
)

// Reconciler drives the row loop: resolve group, list hosts, merge
// tags, push updates. Strictly sequential — rows in CSV order, hosts in
// the order the API returns them. Every dependency is handed in at
// construction; there is no shared state between rows.
type Reconciler struct {
	client  *ZabbixClient
	audit   *AuditStore // nil when the audit trail is disabled
	logger  zerolog.Logger
	runID   string
	runName string
	dryRun  bool
}

func NewReconciler(client *ZabbixClient, audit *AuditStore, logger zerolog.Logger, runID, runName string, dryRun bool) *Reconciler {
	return &Reconciler{
		client:  client,
		audit:   audit,
		logger:  logger,
		runID:   runID,
		runName: runName,
		dryRun:  dryRun,
	}
}

// RunStats summarizes a run for the closing log line.
type RunStats struct {
	RowsProcessed int
	RowsSkipped   int
	HostsUpdated  int
	HostsFailed   int
}

// Run processes every row, best effort: a failed row or host is logged
// and skipped, never aborts the rest of the batch. There is no rollback
// — hosts already updated stay updated when a later one fails.
func (r *Reconciler) Run(rows []Row) RunStats {
	var stats RunStats

	for i, row := range rows {
		r.logger.Info().Msgf("Processing row %d/%d - Group: %s", i+1, len(rows), row.GroupName)

		groupID, found, err := r.client.GroupID(row.GroupName)
		if err != nil {
			r.logger.Error().Err(err).Int("row", i+1).Str("group", row.GroupName).
				Msg("Failed to resolve group, skipping row")
			rowsSkippedCount.Inc()
			stats.RowsSkipped++
			continue
		}
		if !found {
			r.logger.Warn().Int("row", i+1).Str("group", row.GroupName).
				Msg("No group found, skipping row")
			rowsSkippedCount.Inc()
			stats.RowsSkipped++
			continue
		}

		hosts, err := r.client.Hosts(groupID)
		if err != nil {
			r.logger.Error().Err(err).Int("row", i+1).Str("group", row.GroupName).
				Msg("Failed to list hosts, skipping row")
			rowsSkippedCount.Inc()
			stats.RowsSkipped++
			continue
		}
		r.logger.Info().Msgf("Found %d hosts in group %s", len(hosts), row.GroupName)

		newTags := rowTags(row)
		for _, host := range hosts {
			finalTags := mergeTags(host.Tags, newTags)

			if r.dryRun {
				r.logger.Info().Str("hostid", host.HostID).Str("host", host.Name).
					Interface("tags", finalTags).Msg("Dry run, would update host")
				continue
			}

			if err := r.client.UpdateHostTags(host.HostID, finalTags); err != nil {
				r.logger.Error().Err(err).Int("row", i+1).Str("hostid", host.HostID).
					Msg("Failed to update host, continuing")
				hostUpdateFailures.Inc()
				stats.HostsFailed++
				continue
			}
			r.logger.Info().Msgf("Successfully updated host %s", host.HostID)
			hostsUpdatedCount.Inc()
			stats.HostsUpdated++

			if r.audit != nil {
				if err := r.audit.RecordUpdate(r.runID, r.runName, row.GroupName, host, finalTags); err != nil {
					r.logger.Error().Err(err).Str("hostid", host.HostID).
						Msg("Failed to write audit record")
				}
			}
		}
		stats.RowsProcessed++
	}

	return stats
}
