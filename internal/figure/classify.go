package figure

// SegmentationSuffix is the suffix that stands in for a missing description.
const SegmentationSuffix = "dseg"

// Classify fills ReportType on every record. Passes run in a fixed order and
// each only fills values still unset:
//  1. the desc entity
//  2. the suffix, when it equals SegmentationSuffix
//  3. the space entity
func Classify(records []Record) {
	for i := range records {
		if desc, ok := records[i].Entities.Get("desc"); ok {
			records[i].ReportType = Set(desc)
		} else {
			records[i].ReportType = Text{}
		}
	}

	for i := range records {
		if records[i].ReportType.Valid {
			continue
		}
		if suffix, ok := records[i].Entities.Get("suffix"); ok && suffix == SegmentationSuffix {
			records[i].ReportType = Set(suffix)
		}
	}

	for i := range records {
		if records[i].ReportType.Valid {
			continue
		}
		if space, ok := records[i].Entities.Get("space"); ok {
			records[i].ReportType = Set(space)
		}
	}
}
