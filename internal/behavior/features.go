package behavior

// Feature enumerates the nine observable daily activity counters. The set is
// closed at compile time; profile tables are arrays indexed by Feature, so a
// role cannot silently miss an entry the way a keyed map could.
type Feature int

const (
	AfterHoursLogons Feature = iota
	SensitiveFileReads
	USBDeviceMounts
	ExternalEmailsSent
	EmailsWithAttachments
	CloudUploadEvents
	FailedLogins
	FilesDeleted
	HTTPCompetitorVisits

	NumFeatures // sentinel, keep last
)

var featureNames = [NumFeatures]string{
	AfterHoursLogons:      "after_hours_logons",
	SensitiveFileReads:    "sensitive_file_reads",
	USBDeviceMounts:       "usb_device_mounts",
	ExternalEmailsSent:    "external_emails_sent",
	EmailsWithAttachments: "emails_with_attachments",
	CloudUploadEvents:     "cloud_upload_events",
	FailedLogins:          "failed_logins",
	FilesDeleted:          "files_deleted",
	HTTPCompetitorVisits:  "http_competitor_visits",
}

func (f Feature) String() string {
	if f < 0 || f >= NumFeatures {
		return "unknown_feature"
	}
	return featureNames[f]
}

// FeatureNames returns the column names in Feature order.
func FeatureNames() []string {
	return featureNames[:]
}

// FeatureVector holds one day's counters, indexed by Feature.
// Counters are always >= 0.
type FeatureVector [NumFeatures]int

// FeatureStats holds one float per feature (means, stds or weights).
type FeatureStats [NumFeatures]float64
