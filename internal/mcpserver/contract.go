package mcpserver

// TimesheetFormatContract describes the wire format and acceptance rules
// that LLM consumers should follow when saving timesheets.
const TimesheetFormatContract = `# Jera Timesheet Format Contract

A timesheet covers one Monday-to-Sunday week and is keyed by the week's
Friday (the week-ending date, ` + "`" + `YYYY-MM-DD` + "`" + `). Any date inside the week is
accepted where a week-ending date is expected; it resolves to that week's
Friday. Each row charges hours to one project / work package combination.

## Rows

` + "```" + `json
[
  {
    "project_id": 132,
    "work_package": "AA123",
    "notes": "integration testing",
    "hours": {"mon": "8", "tue": "8", "wed": "8", "thu": "8", "fri": "8"}
  }
]
` + "```" + `

## Rules

1. **Hours** are decimal strings keyed by three-letter day names
   (` + "`" + `mon` + "`" + `, ` + "`" + `tue` + "`" + `, ` + "`" + `wed` + "`" + `, ` + "`" + `thu` + "`" + `, ` + "`" + `fri` + "`" + `, ` + "`" + `sat` + "`" + `, ` + "`" + `sun` + "`" + `). Omit days with no
   hours; never send negative values.
2. **Weekly total** across all rows must add up to the required target
   (40 hours unless configured otherwise). A sheet that does not add up
   is rejected.
3. **Every row that charges hours** must carry a ` + "`" + `project_id` + "`" + ` and a
   non-blank ` + "`" + `work_package` + "`" + `.
4. **No two rows** may repeat the same project / work package combination.
5. **Saving replaces the whole week.** Always send the complete row list
   for the week, not a delta.
6. ` + "`" + `notes` + "`" + ` is optional free text.

A rejected save reports every violated rule; fix all of them and resend.
`
