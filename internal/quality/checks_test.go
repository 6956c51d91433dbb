package quality

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmkit/internal/dataset"
)

func tableFromCSV(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	table, err := dataset.FromCSV(strings.NewReader(csv))
	require.NoError(t, err)
	return table
}

func TestCheckMissingFields(t *testing.T) {
	table := tableFromCSV(t, `Name,Email,Amount
Acme,a@x.com,10
Globex,,20
Initech,,30
Hooli,d@x.com,40
Umbrella,e@x.com,50
Stark,f@x.com,60
Wayne,g@x.com,70
Cyberdyne,h@x.com,80
Tyrell,i@x.com,90
Weyland,j@x.com,100
`)

	issues := checkMissingFields(table)
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, KindMissingFields, issue.Kind)
	assert.Equal(t, "Email", issue.Column)
	assert.Equal(t, 2, issue.AffectedCount)
	assert.Equal(t, 10, issue.TotalCount)
	assert.Equal(t, 20.0, issue.Percentage)
	// 2/10 = 20% > 10% threshold
	assert.Equal(t, SeverityCritical, issue.Severity)
	assert.Equal(t, "Column 'Email' has 2 missing values (20.0%)", issue.Description)
}

func TestCheckMissingFields_WarningBelowThreshold(t *testing.T) {
	// 1 missing out of 20 rows = 5%, below the 10% critical threshold
	var b strings.Builder
	b.WriteString("Name,Value\n")
	b.WriteString("missing-row,\n")
	for i := 0; i < 19; i++ {
		b.WriteString("x,1\n")
	}

	issues := checkMissingFields(tableFromCSV(t, b.String()))
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
}

func TestCheckMissingFields_FullyPresentEmitsNothing(t *testing.T) {
	table := tableFromCSV(t, "A,B\n1,2\n3,4\n")
	assert.Empty(t, checkMissingFields(table))
}

func TestCheckDuplicates_FullRow(t *testing.T) {
	// One row appears twice: one extra occurrence beyond the first
	table := tableFromCSV(t, `Company,City
Acme,Berlin
Acme,Berlin
Globex,Munich
`)

	issues := checkDuplicates(table)
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, KindDuplicates, issue.Kind)
	assert.Equal(t, SeverityCritical, issue.Severity)
	assert.Equal(t, AllColumns, issue.Column)
	assert.Equal(t, 1, issue.AffectedCount)
	assert.Equal(t, 3, issue.TotalCount)
	assert.Equal(t, "Found 1 exact duplicate rows", issue.Description)
}

func TestCheckDuplicates_FullRowCountInvariantUnderPermutation(t *testing.T) {
	original := tableFromCSV(t, "A,B\nx,1\ny,2\nx,1\nz,3\n")
	permuted := tableFromCSV(t, "A,B\nz,3\nx,1\ny,2\nx,1\n")

	count := func(table *dataset.Table) int {
		for _, issue := range checkDuplicates(table) {
			if issue.Kind == KindDuplicates {
				return issue.AffectedCount
			}
		}
		return 0
	}

	assert.Equal(t, count(original), count(permuted))
}

func TestCheckDuplicates_KeyColumnNormalization(t *testing.T) {
	// Same email in different case and with whitespace; rows differ
	// elsewhere so no full-row duplicate exists
	table := tableFromCSV(t, `Company,Email
TechStart,sarah@techstart.com
OtherCo,SARAH@TECHSTART.COM
Globex,bob@globex.com
`)

	issues := checkDuplicates(table)
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, KindPotentialDuplicates, issue.Kind)
	assert.Equal(t, SeverityWarning, issue.Severity)
	assert.Equal(t, "Email", issue.Column)
	assert.Equal(t, 1, issue.AffectedCount)
}

func TestCheckDuplicates_KeyColumnSuppressedWhenEqualToFullRow(t *testing.T) {
	// The only duplicate values in the key column belong to rows that
	// are exact duplicates; re-reporting them is suppressed
	table := tableFromCSV(t, `Company,Email
Acme,john@acme.com
Acme,john@acme.com
Globex,bob@globex.com
`)

	issues := checkDuplicates(table)
	require.Len(t, issues, 1)
	assert.Equal(t, KindDuplicates, issues[0].Kind)
}

func TestCheckDuplicates_AtMostThreeKeyColumns(t *testing.T) {
	// Four name-matched columns; the fourth (Email2) has duplicates but
	// must not be inspected
	table := tableFromCSV(t, `Lead_ID,Contact_Name,Phone,Email2
1,a,111-222-3333,dup@x.com
2,b,444-555-6666,dup@x.com
3,c,777-888-9999,other@x.com
`)

	for _, issue := range checkDuplicates(table) {
		assert.NotEqual(t, "Email2", issue.Column)
	}
}

func TestCheckDuplicates_NumericKeyColumnSkipped(t *testing.T) {
	// Lead_ID is numeric; key-column normalization only applies to text
	table := tableFromCSV(t, `Lead_ID,Notes
1,first
1,second
2,third
`)

	for _, issue := range checkDuplicates(table) {
		assert.NotEqual(t, KindPotentialDuplicates, issue.Kind)
	}
}

func TestCheckFormatConsistency_Email(t *testing.T) {
	// 10 emails, 2 malformed
	table := tableFromCSV(t, `Email,Other
john@acme.com,1
sarah@techstart,2
mike@globalfoods.com,3
invalid-email,4
amy@smart.com,5
david@cloudfirst.com,6
lisa@nextgenai.com,7
bob@buildright.com,8
nancy@medicareplus.com,9
rchen@finserv.com,10
`)

	issues := checkFormatConsistency(table, DefaultSampleSize)
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, KindFormatInconsistency, issue.Kind)
	assert.Equal(t, SeverityWarning, issue.Severity)
	assert.Equal(t, 2, issue.AffectedCount)
	assert.Equal(t, 10, issue.TotalCount)
	assert.Equal(t, 20.0, issue.Percentage)
}

func TestCheckFormatConsistency_Phone(t *testing.T) {
	table := tableFromCSV(t, `Phone,Other
555-123-4567,1
(555) 345-6789,2
not-a-phone,3
555.567.8901,4
`)

	issues := checkFormatConsistency(table, DefaultSampleSize)
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, SeverityInfo, issue.Severity)
	assert.Equal(t, 1, issue.AffectedCount)
	assert.Equal(t, 4, issue.TotalCount)
}

func TestCheckFormatConsistency_SamplingCapsTotalCount(t *testing.T) {
	// The first-N sampling is a cost bound, not a detection guarantee:
	// invalid values past the sample window are not seen, and TotalCount
	// reflects the sample size rather than the full column.
	var b strings.Builder
	b.WriteString("Email,Other\n")
	for i := 0; i < 150; i++ {
		b.WriteString("ok@example.com,1\n")
	}
	b.WriteString("broken-address,1\n")

	table := tableFromCSV(t, b.String())

	issues := checkFormatConsistency(table, DefaultSampleSize)
	assert.Empty(t, issues, "invalid value beyond the sample window is not inspected")

	// With a sample window covering the whole column the issue appears,
	// with the sampled count as its denominator
	issues = checkFormatConsistency(table, 200)
	require.Len(t, issues, 1)
	assert.Equal(t, 151, issues[0].TotalCount)
}

func TestCheckFormatConsistency_UnmatchedColumnIgnored(t *testing.T) {
	table := tableFromCSV(t, "Notes,Other\n@@@nonsense@@@,1\n")
	assert.Empty(t, checkFormatConsistency(table, DefaultSampleSize))
}

func TestCheckAnomalies_ShortText(t *testing.T) {
	// 2 of 5 non-null values shorter than 2 chars (40% > 10%)
	table := tableFromCSV(t, `Stage,Other
a,1
b,2
Qualified,3
Proposal,4
Negotiation,5
`)

	issues := checkAnomalies(table)
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, KindAnomaly, issue.Kind)
	assert.Equal(t, SeverityInfo, issue.Severity)
	assert.Equal(t, 2, issue.AffectedCount)
	assert.Equal(t, 5, issue.TotalCount)
}

func TestCheckAnomalies_NegativeAmounts(t *testing.T) {
	table := tableFromCSV(t, `Company,Deal_Amount
Acme,50000
Fast Logistics,-25000
Smart,60000
`)

	issues := checkAnomalies(table)
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, KindAnomaly, issue.Kind)
	assert.Equal(t, SeverityWarning, issue.Severity)
	assert.Equal(t, "Deal_Amount", issue.Column)
	assert.Equal(t, 1, issue.AffectedCount)
	assert.Equal(t, 3, issue.TotalCount, "negative check uses the full row count")
}

func TestCheckAnomalies_NegativeInUnnamedColumnIgnored(t *testing.T) {
	table := tableFromCSV(t, "Delta,Other\n-5,1\n-3,2\n")
	assert.Empty(t, checkAnomalies(table))
}

func TestDetectEmailFormat(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"john@acme.com", true},
		{"  john@acme.com  ", true},
		{"first.last+tag@sub.domain.org", true},
		{"sarah@techstart", false},
		{"invalid-email", false},
		{"@nodomain.com", false},
		{"user@domain.c", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectEmailFormat(tt.value))
		})
	}
}

func TestDetectPhoneFormat(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"555-123-4567", true},
		{"(555) 345-6789", true},
		{"+1 555.567.8901", true},
		{"5554567890", true},
		{"1234567", true},
		{"123456", false},
		{"1234567890123456", false},
		{"not-a-phone", false},
		{"555-123-456x", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPhoneFormat(tt.value))
		})
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 20.0, percentage(2, 10))
	assert.Equal(t, 33.3, percentage(1, 3))
	assert.Equal(t, 66.7, percentage(2, 3))
	assert.Equal(t, 0.0, percentage(0, 0), "zero total yields zero, not NaN")
	assert.Equal(t, 100.0, percentage(5, 5))

	// exact binary halves round half-to-even
	assert.Equal(t, 6.2, percentage(1, 16))
	assert.Equal(t, 18.8, percentage(3, 16))
}

func TestKindHumanize(t *testing.T) {
	assert.Equal(t, "Missing Fields", KindMissingFields.Humanize())
	assert.Equal(t, "Potential Duplicates", KindPotentialDuplicates.Humanize())
	assert.Equal(t, "Anomaly", KindAnomaly.Humanize())
}
