package integration

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	custodyDomain "github.com/allisson/custody/internal/custody/domain"
	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
	"github.com/allisson/custody/internal/testutil"
)

const hashC = "fd61a03af4f77d870fc21e05e7e80678095c92d808cfb3b5c279ee04c74aca13"

// placeholders returns n bind parameters in the dialect of the driver.
func (ctx *integrationTestContext) placeholders(n int) []string {
	out := make([]string, n)
	for i := range out {
		if ctx.dbDriver == "postgres" {
			out[i] = fmt.Sprintf("$%d", i+1)
		} else {
			out[i] = "?"
		}
	}
	return out
}

func (ctx *integrationTestContext) appendEvent(
	t *testing.T,
	evidenceID int64,
	action custodyDomain.ActionType,
	hashAfter *string,
) *custodyDomain.CustodyEvent {
	t.Helper()

	custodyUC, err := ctx.container.CustodyUseCase()
	require.NoError(t, err)

	event, err := custodyUC.Append(context.Background(), &custodyDomain.AppendEventInput{
		EvidenceID: evidenceID,
		ActionType: action,
		Handler:    "examiner",
		Location:   "lab-1",
		HashAfter:  hashAfter,
	})
	require.NoError(t, err)
	return event
}

// TestIntegration_Ledger_TamperDetection corrupts the ledger behind the application's back
// and expects verification to point at the forged row.
func TestIntegration_Ledger_TamperDetection(t *testing.T) {
	for _, tc := range drivers {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			evidenceID := testutil.CreateTestEvidence(t, ctx.db, ctx.dbDriver, "/cases/7/mail.eml", hashA)
			h0, h1, h2 := hashA, hashB, hashC
			ctx.appendEvent(t, evidenceID, custodyDomain.ActionInitialUpload, &h0)
			ctx.appendEvent(t, evidenceID, custodyDomain.ActionAnalysisCompleted, &h1)
			last := ctx.appendEvent(t, evidenceID, custodyDomain.ActionTransfer, &h2)

			t.Run("01_ChainValidBeforeCorruption", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet,
					fmt.Sprintf("/v1/evidence/%d/custody/verify", evidenceID), nil)
				require.Equal(t, http.StatusOK, resp.StatusCode)
				assert.Equal(t, true, decode(t, body)["valid"])
			})

			var forgedID int64
			t.Run("02_InsertForgedEvent", func(t *testing.T) {
				p := ctx.placeholders(6)
				query := fmt.Sprintf(`INSERT INTO custody_events
					(evidence_id, sequence, evidence_type, action_type, handler, hash_before, hash_after, created_at)
					VALUES (%s, %s, 'file', 'ACCESS', %s, %s, %s, %s)`,
					p[0], p[1], p[2], p[3], p[4], p[5])
				args := []interface{}{
					evidenceID, last.Sequence + 1, "mallory", hashA, hashA, last.CreatedAt.Add(time.Second),
				}

				if ctx.dbDriver == "postgres" {
					err := ctx.db.QueryRow(query+" RETURNING id", args...).Scan(&forgedID)
					require.NoError(t, err)
					return
				}

				result, err := ctx.db.Exec(query, args...)
				require.NoError(t, err)
				forgedID, err = result.LastInsertId()
				require.NoError(t, err)
			})

			t.Run("03_VerifyPointsAtForgedEvent", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet,
					fmt.Sprintf("/v1/evidence/%d/custody/verify", evidenceID), nil)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				result := decode(t, body)
				assert.Equal(t, false, result["valid"])
				assert.Equal(t, float64(forgedID), result["broken_at"])
				assert.Equal(t, string(custodyDomain.BreakHashMismatch), result["reason"])
				assert.Equal(t, hashC, result["expected"])
				assert.Equal(t, hashA, result["found"])
			})

			t.Run("04_VerifyAllReportsBrokenChain", func(t *testing.T) {
				custodyUC, err := ctx.container.CustodyUseCase()
				require.NoError(t, err)

				report, err := custodyUC.VerifyAll(context.Background())
				require.NoError(t, err)
				assert.Equal(t, int64(1), report.TotalChecked)
				assert.Equal(t, int64(1), report.BrokenCount)
				require.Len(t, report.Broken, 1)
				assert.Equal(t, evidenceID, report.Broken[0].EvidenceID)
			})

			t.Run("05_UpdateIsRejected", func(t *testing.T) {
				p := ctx.placeholders(2)
				_, err := ctx.db.Exec(
					fmt.Sprintf("UPDATE custody_events SET hash_before = %s WHERE id = %s", p[0], p[1]),
					hashC, forgedID,
				)
				assert.Error(t, err)
			})
		})
	}
}

// TestIntegration_Ledger_ConcurrentAppends races appends on one evidence item and on a
// second, independent one.
func TestIntegration_Ledger_ConcurrentAppends(t *testing.T) {
	for _, tc := range drivers {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			custodyUC, err := ctx.container.CustodyUseCase()
			require.NoError(t, err)

			first := testutil.CreateTestEvidence(t, ctx.db, ctx.dbDriver, "/cases/9/a.bin", hashA)
			second := testutil.CreateTestEvidence(t, ctx.db, ctx.dbDriver, "/cases/9/b.bin", hashB)

			const perEvidence = 10

			var wg sync.WaitGroup
			errs := make(chan error, 2*perEvidence)
			for i := 0; i < perEvidence; i++ {
				for _, id := range []int64{first, second} {
					wg.Add(1)
					go func(id int64, n int) {
						defer wg.Done()
						_, err := custodyUC.Append(context.Background(), &custodyDomain.AppendEventInput{
							EvidenceID: id,
							ActionType: custodyDomain.ActionAccess,
							Handler:    fmt.Sprintf("worker-%d", n),
						})
						errs <- err
					}(id, i)
				}
			}
			wg.Wait()
			close(errs)

			for err := range errs {
				assert.NoError(t, err)
			}

			for _, id := range []int64{first, second} {
				assert.Equal(t, perEvidence, testutil.CountCustodyEvents(t, ctx.db, ctx.dbDriver, id))

				result, err := custodyUC.VerifyChain(context.Background(), id)
				require.NoError(t, err)
				assert.True(t, result.Valid, "chain %d should stay intact", id)
				assert.Equal(t, perEvidence, result.EventCount)
			}

			report, err := custodyUC.VerifyAll(context.Background())
			require.NoError(t, err)
			assert.Equal(t, int64(2), report.ValidCount)
			assert.Zero(t, report.BrokenCount)
		})
	}
}

// TestIntegration_Ledger_RemoveCascades checks that removal drops the custody rows and
// journals the chain summary.
func TestIntegration_Ledger_RemoveCascades(t *testing.T) {
	for _, tc := range drivers {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			evidenceUC, err := ctx.container.EvidenceUseCase()
			require.NoError(t, err)

			evidence, err := evidenceUC.Register(context.Background(), &evidenceDomain.RegisterEvidenceInput{
				EvidenceType: evidenceDomain.EvidenceTypeMemoryDump,
				Identifier:   "host-17/mem.raw",
				Size:         4096,
				ContentHash:  hashB,
			})
			require.NoError(t, err)

			ctx.appendEvent(t, evidence.ID, custodyDomain.ActionAcquisition, nil)
			ctx.appendEvent(t, evidence.ID, custodyDomain.ActionAnalysisStarted, nil)

			deletion, err := evidenceUC.Remove(context.Background(), &evidenceDomain.RemoveEvidenceInput{
				ID:      evidence.ID,
				Handler: "supervisor",
				Reason:  "retention expired",
			})
			require.NoError(t, err)
			assert.Equal(t, int64(2), deletion.EventCount)
			require.NotNil(t, deletion.LastHashAfter)
			assert.Equal(t, hashB, *deletion.LastHashAfter)

			assert.Zero(t, testutil.CountCustodyEvents(t, ctx.db, ctx.dbDriver, evidence.ID))

			_, err = evidenceUC.Remove(context.Background(), &evidenceDomain.RemoveEvidenceInput{
				ID:      evidence.ID,
				Handler: "supervisor",
				Reason:  "again",
			})
			assert.ErrorIs(t, err, evidenceDomain.ErrEvidenceNotFound)
		})
	}
}
